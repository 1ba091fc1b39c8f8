package models

import (
	"fmt"

	"gorm.io/gen"
	"gorm.io/gorm"
)

// Migrate registers the explicit join-table models and brings the schema up
// to date. Both the server and the tests go through here so the many-to-many
// relations always resolve against project_technologies / project_tags rows.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Project{}, "Technologies", &ProjectTechnology{}); err != nil {
		return fmt.Errorf("setup project_technologies join table: %w", err)
	}
	if err := db.SetupJoinTable(&Project{}, "Tags", &ProjectTag{}); err != nil {
		return fmt.Errorf("setup project_tags join table: %w", err)
	}

	return db.AutoMigrate(
		&User{},
		&Technology{},
		&Tag{},
		&Project{},
		&Video{},
		&ProjectImage{},
	)
}

// GenerateModels runs the gorm/gen query-helper generator against the live
// schema. Triggered from main with GENERATE_MODELS=true.
func GenerateModels(db *gorm.DB) error {
	if err := Migrate(db); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)

	g.ApplyBasic(
		User{},
		Project{},
		Technology{},
		Tag{},
		Video{},
		ProjectImage{},
	)

	g.Execute()
	return nil
}
