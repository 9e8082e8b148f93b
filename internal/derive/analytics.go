package derive

import (
	"cmp"
	"slices"
	"time"

	"github.com/tgienger/crmdash/internal/models"
)

// DefaultLowStock is the stock level below which a product counts as low
const DefaultLowStock = 10

// CategoryCount is the number of products in one category and their stock value
type CategoryCount struct {
	Name  string
	Count int
	Value float64
}

// ProductStats summarizes the product cache for the dashboard
type ProductStats struct {
	Total          int
	Categories     int
	InventoryValue float64
	LowStock       int
	ByCategory     []CategoryCount // most populated first
}

// ProductSummary computes catalog totals. lowStock <= 0 uses DefaultLowStock.
func ProductSummary(products []models.Product, lowStock int) ProductStats {
	if lowStock <= 0 {
		lowStock = DefaultLowStock
	}

	stats := ProductStats{Total: len(products)}
	categories := map[string]*CategoryCount{}
	for _, p := range products {
		value := p.Price * float64(p.Stock)
		stats.InventoryValue += value
		if p.Stock < lowStock {
			stats.LowStock++
		}
		c, ok := categories[p.Category]
		if !ok {
			c = &CategoryCount{Name: p.Category}
			categories[p.Category] = c
		}
		c.Count++
		c.Value += value
	}

	stats.Categories = len(categories)
	for _, c := range categories {
		stats.ByCategory = append(stats.ByCategory, *c)
	}
	slices.SortFunc(stats.ByCategory, func(a, b CategoryCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return stats
}

// TaskStats summarizes the task list for the dashboard
type TaskStats struct {
	Total      int
	ByStatus   map[models.Status]int
	ByPriority map[models.Priority]int
	Overdue    int // due before today and not completed
	DueToday   int // due today and not completed
}

// TaskSummary counts tasks relative to today
func TaskSummary(tasks []models.Task, today time.Time) TaskStats {
	stats := TaskStats{
		Total:      len(tasks),
		ByStatus:   map[models.Status]int{},
		ByPriority: map[models.Priority]int{},
	}
	for _, t := range tasks {
		stats.ByStatus[t.Status]++
		stats.ByPriority[t.Priority]++
		if t.Status == models.StatusCompleted || t.DueDate.IsZero() {
			continue
		}
		switch c := compareDates(t.DueDate, today); {
		case c < 0:
			stats.Overdue++
		case c == 0:
			stats.DueToday++
		}
	}
	return stats
}
