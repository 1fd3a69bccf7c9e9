package console

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/bwmarrin/snowflake"
	pkgdb "github.com/smallbiznis/coopbilling/pkg/db"
	"github.com/smallbiznis/coopbilling/pkg/db/option"
	"github.com/smallbiznis/coopbilling/pkg/db/pagination"
	"github.com/smallbiznis/coopbilling/pkg/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ModelInfo describes a registered model.
type ModelInfo struct {
	Name    string   `json:"name"`
	Verbose string   `json:"verbose_name"`
	Columns []string `json:"columns"`
}

type ListResult struct {
	pagination.PageInfo
	Records []any `json:"data"`
}

// ModelAdmin is the default administrative behavior for one model. JSON
// payloads use the model's json field names, which match its columns.
type ModelAdmin interface {
	Info() ModelInfo
	List(ctx context.Context, page pagination.Pagination) (ListResult, error)
	Get(ctx context.Context, id int64) (any, error)
	Create(ctx context.Context, payload []byte) (any, error)
	// Update changes only the columns present in payload.
	Update(ctx context.Context, id int64, payload []byte) (any, error)
	Delete(ctx context.Context, id int64) error

	// Values returns the editable columns of a record keyed by column name.
	Values(ctx context.Context, id int64) (map[string]any, error)
	CreateValues(ctx context.Context, values map[string]any) (snowflake.ID, error)
	UpdateValues(ctx context.Context, id int64, values map[string]any) error
}

var schemaCache sync.Map

var dateType = reflect.TypeOf(datatypes.Date{})

type modelAdmin[T any, PT recordPtr[T]] struct {
	info    ModelInfo
	columns map[string]*schema.Field
	repo    repository.Repository[T]
	genID   *snowflake.Node
	log     *zap.Logger
}

func newModelAdmin[T any, PT recordPtr[T]](db *gorm.DB, genID *snowflake.Node, log *zap.Logger) (*modelAdmin[T, PT], error) {
	s, err := schema.Parse(new(T), &schemaCache, db.NamingStrategy)
	if err != nil {
		return nil, fmt.Errorf("console: parse %T: %w", new(T), err)
	}

	columns := make(map[string]*schema.Field)
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		if !editable(field) {
			continue
		}
		columns[field.DBName] = field
		names = append(names, field.DBName)
	}

	return &modelAdmin[T, PT]{
		info: ModelInfo{
			Name:    s.Table,
			Verbose: verboseName(s.Name),
			Columns: names,
		},
		columns: columns,
		repo:    repository.ProvideStore[T](db),
		genID:   genID,
		log:     log.With(zap.String("model", s.Table)),
	}, nil
}

func (a *modelAdmin[T, PT]) Info() ModelInfo {
	info := a.info
	info.Columns = append([]string(nil), a.info.Columns...)
	return info
}

func (a *modelAdmin[T, PT]) List(ctx context.Context, page pagination.Pagination) (ListResult, error) {
	after, err := pagination.AfterID(page.PageToken)
	if err != nil {
		return ListResult{}, err
	}
	limit := page.Size()

	items, err := a.repo.Find(ctx, nil,
		option.WithIDAfter(after),
		option.WithOrder("id", false),
		option.WithLimit(limit+1),
	)
	if err != nil {
		return ListResult{}, err
	}

	items, pageInfo := pagination.BuildCursorPageInfo(items, limit, func(item *T) int64 {
		return int64(PT(item).GetID())
	})

	records := make([]any, 0, len(items))
	for _, item := range items {
		records = append(records, item)
	}
	return ListResult{PageInfo: *pageInfo, Records: records}, nil
}

func (a *modelAdmin[T, PT]) Get(ctx context.Context, id int64) (any, error) {
	return a.get(ctx, id)
}

func (a *modelAdmin[T, PT]) get(ctx context.Context, id int64) (*T, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	record, err := a.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

func (a *modelAdmin[T, PT]) Create(ctx context.Context, payload []byte) (any, error) {
	record, _, err := a.decode(payload)
	if err != nil {
		return nil, err
	}
	PT(record).AssignID(a.genID.Generate())

	if err := a.repo.Create(ctx, record); err != nil {
		return nil, writeErr(err)
	}
	a.log.Info("record created", zap.String("id", PT(record).GetID().String()))
	return record, nil
}

func (a *modelAdmin[T, PT]) Update(ctx context.Context, id int64, payload []byte) (any, error) {
	record, present, err := a.decode(payload)
	if err != nil {
		return nil, err
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("%w: no editable columns", ErrInvalidPayload)
	}

	rv := reflect.ValueOf(record).Elem()
	values := make(map[string]any, len(present))
	for _, column := range present {
		values[column], _ = a.columns[column].ValueOf(ctx, rv)
	}
	if err := a.update(ctx, id, values); err != nil {
		return nil, err
	}
	return a.get(ctx, id)
}

func (a *modelAdmin[T, PT]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	rows, err := a.repo.Delete(ctx, id)
	if err != nil {
		return writeErr(err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	a.log.Info("record deleted", zap.Int64("id", id))
	return nil
}

func (a *modelAdmin[T, PT]) Values(ctx context.Context, id int64) (map[string]any, error) {
	record, err := a.get(ctx, id)
	if err != nil {
		return nil, err
	}

	rv := reflect.ValueOf(record).Elem()
	out := make(map[string]any, len(a.columns)+1)
	out["id"] = PT(record).GetID()
	for column, field := range a.columns {
		out[column], _ = field.ValueOf(ctx, rv)
	}
	return out, nil
}

func (a *modelAdmin[T, PT]) CreateValues(ctx context.Context, values map[string]any) (snowflake.ID, error) {
	record := new(T)
	rv := reflect.ValueOf(record).Elem()
	for column, value := range values {
		field, ok := a.columns[column]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
		}
		if err := field.Set(ctx, rv, normalize(field, value)); err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, column, err)
		}
	}

	id := a.genID.Generate()
	PT(record).AssignID(id)
	if err := a.repo.Create(ctx, record); err != nil {
		return 0, writeErr(err)
	}
	a.log.Info("record created", zap.String("id", id.String()))
	return id, nil
}

func (a *modelAdmin[T, PT]) UpdateValues(ctx context.Context, id int64, values map[string]any) error {
	columns := make(map[string]any, len(values))
	for column, value := range values {
		field, ok := a.columns[column]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
		}
		columns[column] = normalize(field, value)
	}
	if len(columns) == 0 {
		return fmt.Errorf("%w: no editable columns", ErrInvalidPayload)
	}
	return a.update(ctx, id, columns)
}

func (a *modelAdmin[T, PT]) update(ctx context.Context, id int64, values map[string]any) error {
	if id <= 0 {
		return ErrInvalidID
	}
	rows, err := a.repo.Update(ctx, id, values)
	if err != nil {
		return writeErr(err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	a.log.Info("record updated", zap.Int64("id", id))
	return nil
}

// decode reads payload into a new record, dropping keys that are not
// editable columns, and reports which columns were present.
func (a *modelAdmin[T, PT]) decode(payload []byte) (*T, []string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	present := make([]string, 0, len(raw))
	for key := range raw {
		if _, ok := a.columns[key]; !ok {
			delete(raw, key)
			continue
		}
		present = append(present, key)
	}
	sort.Strings(present)

	cleaned, err := json.Marshal(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	record := new(T)
	if err := json.Unmarshal(cleaned, record); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return record, present, nil
}

// normalize adapts form values to the column: empty text clears an
// optional column and times become dates on date columns.
func normalize(field *schema.Field, value any) any {
	if s, ok := value.(string); ok && s == "" && field.FieldType.Kind() == reflect.Ptr {
		return nil
	}
	if t, ok := value.(time.Time); ok && field.IndirectFieldType == dateType {
		return datatypes.Date(t)
	}
	return value
}

func writeErr(err error) error {
	switch {
	case pkgdb.IsDuplicateKeyErr(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case pkgdb.IsForeignKeyErr(err):
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	return err
}

func editable(field *schema.Field) bool {
	switch {
	case field.DBName == "", field.PrimaryKey:
		return false
	case field.AutoCreateTime > 0 || field.AutoUpdateTime > 0:
		return false
	}
	return field.Creatable || field.Updatable
}

// verboseName turns "MeterReplacement" into "meter replacement".
func verboseName(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
