package postgres

import (
	"fmt"
	"strings"

	"real-estate-service/internal/core/domain"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// likeEscaper экранирует метасимволы LIKE, иначе "%" и "_" из
// пользовательского ввода работают как шаблоны, а не как литералы.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// addContains - регистронезависимый поиск подстроки.
func (qb *queryBuilder) addContains(fieldName, substring string) {
	if substring == "" {
		return
	}
	qb.addCondition(`%s ILIKE $%d ESCAPE '\'`, fieldName, "%"+likeEscaper.Replace(substring)+"%")
}

func (qb *queryBuilder) build() (string, []interface{}) {
	if len(qb.conditions) == 0 {
		return "", qb.args
	}
	return "WHERE " + strings.Join(qb.conditions, " AND "), qb.args
}

// applyFilters переводит дескриптор фильтра в WHERE-часть запроса.
// Подстроки адреса комбинируются по AND, границы цены включительные.
func applyFilters(filters domain.PropertyFilters) (string, []interface{}) {
	qb := newQueryBuilder()

	qb.addContains("p.street", filters.Address.Street)
	qb.addContains("p.city", filters.Address.City)
	qb.addContains("p.state", filters.Address.State)
	qb.addContains("p.zip_code", filters.Address.ZipCode)

	if filters.MinPrice != nil {
		qb.addCondition("%s >= $%d", "p.price", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		qb.addCondition("%s <= $%d", "p.price", *filters.MaxPrice)
	}
	if filters.Year != nil {
		qb.addCondition("%s = $%d", "p.year", *filters.Year)
	}

	if filters.HasEnabledImage {
		qb.conditions = append(qb.conditions,
			"EXISTS (SELECT 1 FROM property_images i WHERE i.property_id = p.id AND i.enabled)")
	}

	return qb.build()
}
