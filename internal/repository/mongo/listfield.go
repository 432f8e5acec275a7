package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/fitness-center/internal/domain"
)

// listField reads a list-valued field. Arrays are the native layout;
// strings are tolerated for documents imported before the migration.
func listField(v bson.RawValue) domain.ListField {
	switch v.Type {
	case bsontype.Array:
		var items []any
		if err := v.Unmarshal(&items); err != nil {
			return domain.ParsedList(nil)
		}
		for i := range items {
			items[i] = plain(items[i])
		}
		return domain.ParsedList(items)
	case bsontype.String:
		return domain.RawList(v.StringValue())
	default:
		return domain.ParsedList(nil)
	}
}

// plain converts driver container types into the map/slice shapes the
// normalizer understands.
func plain(v any) any {
	switch x := v.(type) {
	case primitive.D:
		m := make(map[string]any, len(x))
		for _, e := range x {
			m[e.Key] = plain(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[k] = plain(val)
		}
		return m
	case primitive.A:
		out := make([]any, len(x))
		for i := range x {
			out[i] = plain(x[i])
		}
		return out
	default:
		return v
	}
}

func arrayValue(items []any) (bson.RawValue, error) {
	if items == nil {
		items = []any{}
	}
	t, data, err := bson.MarshalValue(items)
	if err != nil {
		return bson.RawValue{}, err
	}
	return bson.RawValue{Type: t, Value: data}, nil
}

func mealItems(meals []domain.MealEntry) []any {
	items := make([]any, len(meals))
	for i, m := range meals {
		if m.Record != nil {
			items[i] = *m.Record
		} else {
			items[i] = m.Text
		}
	}
	return items
}

func stringItems(ss []string) []any {
	items := make([]any, len(ss))
	for i, s := range ss {
		items[i] = s
	}
	return items
}
