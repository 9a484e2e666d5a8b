package schema

import (
	"fmt"

	"github.com/gnames/gntol/pkg/tree"
	"gorm.io/gorm"
)

// Table pairs a model with a table name.
type Table struct {
	Name  string
	Model any
}

// ViewTables returns tables of a tree view.
func ViewTables(v tree.View) []Table {
	return []Table{
		{NodesTable(v), &Node{}},
		{EdgesTable(v), &Edge{}},
		{LinkedImagesTable(v), &LinkedImage{}},
	}
}

// AuxTables returns tables filled by ingestion collaborators.
func AuxTables() []Table {
	return []Table{
		{"names", &AltName{}},
		{"wiki_ids", &WikiID{}},
		{"descs", &Desc{}},
		{"node_imgs", &NodeImage{}},
		{"images", &Image{}},
		{"node_iucn", &NodeIUCN{}},
		{"node_pop", &NodePop{}},
	}
}

// AllTables returns tables of all views followed by auxiliary tables.
func AllTables() []Table {
	var res []Table
	for _, v := range tree.Views {
		res = append(res, ViewTables(v)...)
	}
	return append(res, AuxTables()...)
}

// Indexes returns statements that create secondary indices. Index
// names include table names so views do not collide.
func Indexes() []string {
	var res []string
	for _, v := range tree.Views {
		nodes, edges := NodesTable(v), EdgesTable(v)
		res = append(res,
			fmt.Sprintf(
				"CREATE INDEX IF NOT EXISTS %[1]s_lower_name_idx "+
					"ON %[1]s (lower(name) text_pattern_ops)", nodes,
			),
			fmt.Sprintf(
				"CREATE INDEX IF NOT EXISTS %[1]s_child_idx ON %[1]s (child)",
				edges,
			),
		)
	}
	res = append(res,
		"CREATE INDEX IF NOT EXISTS names_lower_alt_name_idx "+
			"ON names (lower(alt_name) text_pattern_ops)",
		"CREATE INDEX IF NOT EXISTS names_alt_name_idx ON names (alt_name)",
		"CREATE INDEX IF NOT EXISTS node_imgs_img_idx ON node_imgs (img_id, src)",
	)
	return res
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	for _, t := range AllTables() {
		if err := db.Table(t.Name).AutoMigrate(t.Model); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
	}
	return nil
}
