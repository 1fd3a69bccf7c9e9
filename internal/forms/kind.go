package forms

import "strings"

// ColumnType is the storage type of a model column as the form layer sees it.
type ColumnType int

const (
	TypeOther ColumnType = iota
	TypeText
	TypeInteger
	TypeDecimal
	TypeBoolean
	TypeDate
	TypeDateTime
	TypeForeignKey
)

func (t ColumnType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeInteger:
		return "integer"
	case TypeDecimal:
		return "decimal"
	case TypeBoolean:
		return "boolean"
	case TypeDate:
		return "date"
	case TypeDateTime:
		return "datetime"
	case TypeForeignKey:
		return "foreign_key"
	default:
		return "other"
	}
}

// FieldKind is the category a model field falls into when the customization
// callback picks its form field. The categories are checked in declaration
// order, so a text column that declares choices is a KindChoice.
type FieldKind int

const (
	KindChoice FieldKind = iota
	KindText
	KindInteger
	KindDate
	KindForeignKey
	KindOther
)

func (k FieldKind) String() string {
	switch k {
	case KindChoice:
		return "choice"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindDate:
		return "date"
	case KindForeignKey:
		return "foreign_key"
	default:
		return "other"
	}
}

// Choice is one allowed value of a choice-bearing column.
type Choice struct {
	Value string
	Label string
}

// ModelField describes one editable model column.
type ModelField struct {
	// Name is the column name; it doubles as the form field name.
	Name      string
	Label     string
	HelpText  string
	Type      ColumnType
	Required  bool
	MaxLength int
	MinLength int
	// NonNegative marks unsigned integer columns.
	NonNegative bool
	Choices     []Choice
	// RelatedTable is set for foreign keys.
	RelatedTable string
}

// Kind classifies the field. Only text columns with a maximum length count
// as bounded text; unbounded text falls through to KindOther.
func (f ModelField) Kind() FieldKind {
	switch {
	case len(f.Choices) > 0:
		return KindChoice
	case f.Type == TypeText && f.MaxLength > 0:
		return KindText
	case f.Type == TypeInteger:
		return KindInteger
	case f.Type == TypeDate:
		return KindDate
	case f.Type == TypeForeignKey:
		return KindForeignKey
	default:
		return KindOther
	}
}

// ParseChoices reads the `choices` tag format: "value=Label;value=Label".
// A segment without "=" uses the value as its label.
func ParseChoices(tag string) []Choice {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}
	var out []Choice
	for _, segment := range strings.Split(tag, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		value, label, found := strings.Cut(segment, "=")
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if !found || strings.TrimSpace(label) == "" {
			label = value
		}
		out = append(out, Choice{Value: value, Label: strings.TrimSpace(label)})
	}
	return out
}

// prettyName turns a column name into a human label: "business_name" -> "Business name".
func prettyName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
