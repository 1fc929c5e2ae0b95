package reasoning

import (
	"fmt"
	"strings"
)

// Category is the coarse problem domain used to pick a prompt template.
type Category string

const (
	CategoryMath    Category = "math"
	CategoryLogic   Category = "logic"
	CategoryRiddle  Category = "riddle"
	CategoryGeneral Category = "general"
)

// Categories returns all categories in precedence order.
func Categories() []Category {
	return []Category{CategoryMath, CategoryLogic, CategoryRiddle, CategoryGeneral}
}

// ParseCategory converts user input (case-insensitive) into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func (c Category) String() string {
	return string(c)
}
