package forms

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"gorm.io/gorm/schema"
)

// Struct tags read next to the gorm tags of a model.
const (
	TagLabel   = "label"
	TagHelp    = "help"
	TagChoices = "choices"
)

var schemaCache sync.Map

// Describe parses model (a pointer to a gorm model) and returns a descriptor
// for every editable column, in declaration order. The primary key,
// automatic timestamps and association fields are skipped.
func Describe(model any) ([]ModelField, error) {
	s, err := schema.Parse(model, &schemaCache, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("forms: parse %T: %w", model, err)
	}

	related := make(map[string]string)
	for _, rel := range s.Relationships.BelongsTo {
		for _, ref := range rel.References {
			if ref.OwnPrimaryKey || ref.ForeignKey == nil || rel.FieldSchema == nil {
				continue
			}
			related[ref.ForeignKey.DBName] = rel.FieldSchema.Table
		}
	}

	out := make([]ModelField, 0, len(s.Fields))
	for _, field := range s.Fields {
		if !editable(field) {
			continue
		}
		out = append(out, describeField(field, related[field.DBName]))
	}
	return out, nil
}

// DescribeTable returns the table name gorm maps model to.
func DescribeTable(model any) (string, error) {
	s, err := schema.Parse(model, &schemaCache, schema.NamingStrategy{})
	if err != nil {
		return "", fmt.Errorf("forms: parse %T: %w", model, err)
	}
	return s.Table, nil
}

func editable(field *schema.Field) bool {
	switch {
	case field.DBName == "":
		return false
	case field.PrimaryKey:
		return false
	case field.AutoCreateTime > 0 || field.AutoUpdateTime > 0:
		return false
	case !field.Creatable && !field.Updatable:
		return false
	}
	return true
}

func describeField(field *schema.Field, relatedTable string) ModelField {
	mf := ModelField{
		Name:     field.DBName,
		Label:    strings.TrimSpace(field.Tag.Get(TagLabel)),
		HelpText: strings.TrimSpace(field.Tag.Get(TagHelp)),
		Choices:  ParseChoices(field.Tag.Get(TagChoices)),
		Required: field.FieldType.Kind() != reflect.Ptr,
	}

	switch dataType(field) {
	case schema.String:
		mf.Type = TypeText
		mf.MaxLength = field.Size
	case schema.Int:
		mf.Type = TypeInteger
	case schema.Uint:
		mf.Type = TypeInteger
		mf.NonNegative = true
	case schema.Float:
		mf.Type = TypeDecimal
	case schema.Bool:
		mf.Type = TypeBoolean
		mf.Required = false
	case schema.Time:
		mf.Type = TypeDateTime
	case "date":
		mf.Type = TypeDate
	default:
		mf.Type = TypeOther
	}

	if relatedTable != "" {
		mf.Type = TypeForeignKey
		mf.RelatedTable = relatedTable
		mf.NonNegative = false
	}

	if mf.Label == "" {
		name := mf.Name
		if mf.Type == TypeForeignKey {
			name = strings.TrimSuffix(name, "_id")
		}
		mf.Label = prettyName(name)
	}
	return mf
}

// dataType is the column's generic type. An explicit `type:` tag replaces
// gorm's data type with raw SQL, so the Go kind decides in that case.
func dataType(field *schema.Field) schema.DataType {
	switch field.DataType {
	case schema.String, schema.Int, schema.Uint, schema.Float, schema.Bool, schema.Time, "date":
		return field.DataType
	}
	switch field.IndirectFieldType.Kind() {
	case reflect.String:
		return schema.String
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return schema.Int
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return schema.Uint
	case reflect.Float32, reflect.Float64:
		return schema.Float
	case reflect.Bool:
		return schema.Bool
	}
	return field.DataType
}
