package checks

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"vessel-manager/core/database"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a schema integrity check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

type tabler interface {
	TableName() string
}

// CheckSchemaIntegrity verifies the live schema using GORM models as the
// source of truth. Each model must implement TableName.
func CheckSchemaIntegrity(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
		Matched: true,
	}

	for _, model := range models {
		t, ok := model.(tabler)
		if !ok {
			return nil, fmt.Errorf("model %T does not implement TableName", model)
		}
		tableName := t.TableName()

		actualCols, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}

		tblReport := compareTable(reflect.TypeOf(model), actualCols)
		if tblReport.Status != "ok" {
			report.Matched = false
		}
		report.Tables[tableName] = tblReport
	}

	return report, nil
}

func compareTable(typ reflect.Type, actualCols []database.ColumnInfo) TableReport {
	tblReport := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	actualMap := make(map[string]database.ColumnInfo, len(actualCols))
	for _, col := range actualCols {
		actualMap[col.Field] = col
	}

	for _, col := range expectedColumns(typ) {
		actCol, exists := actualMap[col.name]
		if !exists {
			tblReport.MissingColumns = append(tblReport.MissingColumns, col.name)
			tblReport.Status = "error"
			continue
		}

		// only columns with an explicit type tag are type checked
		if col.typ != "" && !strings.Contains(actCol.Type, col.typ) {
			mismatch := fmt.Sprintf("%s: expected %s, got %s", col.name, col.typ, actCol.Type)
			tblReport.TypeMismatches = append(tblReport.TypeMismatches, mismatch)
			tblReport.Status = "error"
		}
	}

	sort.Strings(tblReport.MissingColumns)
	return tblReport
}

type column struct {
	name string
	typ  string
}

// expectedColumns walks a model's fields, descending into embedded structs.
func expectedColumns(typ reflect.Type) []column {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var cols []column
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		gormTag := field.Tag.Get("gorm")
		if gormTag == "-" {
			continue
		}
		if field.Anonymous && gormTag == "" {
			cols = append(cols, expectedColumns(field.Type)...)
			continue
		}

		colName := parseGormColumn(gormTag)
		if colName == "" {
			continue
		}
		cols = append(cols, column{name: colName, typ: strings.ToLower(parseGormType(gormTag))})
	}
	return cols
}

// Helpers to parse simple GORM tags
func parseGormColumn(tag string) string {
	parts := strings.Split(tag, ";")
	for _, p := range parts {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}

func parseGormType(tag string) string {
	parts := strings.Split(tag, ";")
	for _, p := range parts {
		if strings.HasPrefix(p, "type:") {
			return strings.TrimPrefix(p, "type:")
		}
	}
	return ""
}
