package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateSummaryPDF renders the dashboard summary as a one-page budget
// report using maroto/v2 and returns the raw PDF bytes.
func GenerateSummaryPDF(summary *DashboardSummary, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addSummaryHeader(m, summary, generatedAt)
	addSummaryGroupTable(m, "BY STATUS", summary.ByStatus)
	addSummaryGroupTable(m, "BY CAMPUS", summary.ByCampus)
	addSummaryGroupTable(m, "BY FUND SOURCE", summary.ByFundSource)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addSummaryHeader adds the report title, generation date and overall totals.
func addSummaryHeader(m core.Maroto, summary *DashboardSummary, generatedAt time.Time) {
	m.AddRows(
		row.New(10).Add(
			col.New(8).Add(
				text.New("EXTENSION SERVICES BUDGET SUMMARY", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(4).Add(
				text.New(generatedAt.Format("January 2, 2006"), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(3).Add(text.New(fmt.Sprintf("Records: %d", summary.Overall.Count), props.Text{Size: 9})),
			col.New(3).Add(text.New("Requested: "+FormatPHP(summary.Overall.Requested), props.Text{Size: 9})),
			col.New(3).Add(text.New("Obligated: "+FormatPHP(summary.Overall.Obligated), props.Text{Size: 9})),
			col.New(3).Add(text.New("Disbursed: "+FormatPHP(summary.Overall.Disbursed), props.Text{Size: 9})),
		),
	)
	m.AddRows(row.New(3))
}

// addSummaryGroupTable renders one grouped breakdown as a four-column table.
func addSummaryGroupTable(m core.Maroto, title string, groups map[string]GroupTotals) {
	if len(groups) == 0 {
		return
	}

	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	headStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	headRightStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	cellStyle := props.Text{Size: 8, Align: align.Left}
	cellRightStyle := props.Text{Size: 8, Align: align.Right}

	m.AddRows(
		row.New(6).Add(col.New(12).Add(text.New(title, labelStyle))),
		row.New(6).Add(
			col.New(4).Add(text.New("Group", headStyle)),
			col.New(2).Add(text.New("Count", headRightStyle)),
			col.New(3).Add(text.New("Requested", headRightStyle)),
			col.New(3).Add(text.New("Disbursed", headRightStyle)),
		),
	)

	// Map order is random; sort keys so the report is reproducible.
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		g := groups[key]
		m.AddRows(
			row.New(5).Add(
				col.New(4).Add(text.New(key, cellStyle)),
				col.New(2).Add(text.New(fmt.Sprintf("%d", g.Count), cellRightStyle)),
				col.New(3).Add(text.New(FormatPHP(g.Requested), cellRightStyle)),
				col.New(3).Add(text.New(FormatPHP(g.Disbursed), cellRightStyle)),
			),
		)
	}
	m.AddRows(row.New(4))
}
