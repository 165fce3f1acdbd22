// Package postgres implements the repository interfaces on PostgreSQL using
// database/sql with parameterized queries.
package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"mobilityapi/internal/model"
)

type scanner interface {
	Scan(dest ...any) error
}

var slotColumns = map[model.SlotKey]string{
	model.SlotSolicitude:         "solicitude_document",
	model.SlotPresentationOffice: "presentation_office_document",
	model.SlotAcceptance:         "acceptance_document",
	model.SlotEvaluation:         "evaluation_document",
	model.SlotTemplate:           "template_document",
}

// slotColumn resolves the column of a slot, never passing caller text into SQL.
func slotColumn(c model.Category, key model.SlotKey) (string, error) {
	col, ok := slotColumns[key]
	if !ok || !c.Has(key) {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidSlot, key)
	}
	return col, nil
}

func slotColumnList(c model.Category, alias string) string {
	cols := make([]string, 0, len(c.Slots()))
	for _, key := range c.Slots() {
		cols = append(cols, alias+slotColumns[key])
	}
	return strings.Join(cols, ", ")
}

// slotDest returns scan targets for the slot columns of c and a func that
// copies the scanned values into set.
func slotDest(c model.Category) ([]any, func(set model.DocumentSet)) {
	keys := c.Slots()
	vals := make([]sql.NullString, len(keys))
	dest := make([]any, len(keys))
	for i := range vals {
		dest[i] = &vals[i]
	}
	return dest, func(set model.DocumentSet) {
		for i, key := range keys {
			if vals[i].Valid {
				v := vals[i].String
				set.SetSlot(key, &v)
			} else {
				set.SetSlot(key, nil)
			}
		}
	}
}

// whereBuilder collects AND-ed conditions with positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereBuilder) raw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}
