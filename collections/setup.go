package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgetmonitor/services"
)

// Setup programmatically creates/ensures the transactions collection exists.
// The campus select values come from the caller's registry so campuses added
// through the YAML override file are storable. Field-level invariants
// (beneficiary reconciliation, noise-row rejection) are enforced by the
// mapper and service layer, not by the schema.
func Setup(app *pocketbase.PocketBase, reg *services.Registry) {
	ensureCollection(app, "transactions", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "budget_code", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    services.AllStatuses(),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.DateField{Name: "date_received", Required: false})
		c.Fields.Add(&core.TextField{Name: "program", Required: false})
		c.Fields.Add(&core.TextField{Name: "project", Required: false})
		c.Fields.Add(&core.TextField{Name: "activity", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "campus",
			Required:  true,
			Values:    reg.CampusNames(),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "college", Required: false})
		c.Fields.Add(&core.NumberField{Name: "male", Required: false})
		c.Fields.Add(&core.NumberField{Name: "female", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total", Required: false})
		c.Fields.Add(&core.NumberField{Name: "amount", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "sheet",
			Required:  true,
			Values:    services.AllSheets(),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "fund_category", Required: false})
		c.Fields.Add(&core.TextField{Name: "fund_source", Required: false})
		c.Fields.Add(&core.TextField{Name: "obligation_no", Required: false})
		c.Fields.Add(&core.DateField{Name: "obligation_date", Required: false})
		c.Fields.Add(&core.NumberField{Name: "obligation_amount", Required: false})
		c.Fields.Add(&core.TextField{Name: "dv_no", Required: false})
		c.Fields.Add(&core.NumberField{Name: "dv_amount", Required: false})
		c.Fields.Add(&core.TextField{Name: "pr_no", Required: false})
		c.Fields.Add(&core.NumberField{Name: "pr_amount", Required: false})
		c.Fields.Add(&core.TextField{Name: "payee", Required: false})
		c.Fields.Add(&core.TextField{Name: "remarks", Required: false})
		c.Fields.Add(&core.TextField{Name: "tracking_no", Required: false})
		c.Fields.Add(&core.TextField{Name: "created_by", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
