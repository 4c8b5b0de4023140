package services

import (
	"sync"
	"time"

	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/cache"
	"github.com/thanhvudev/furnimart/pkg/workerpool"
)

// dashboardOrderStore feeds the order figures on the dashboard.
type dashboardOrderStore interface {
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	Revenue() (float64, error)
}

// dashboardCatalogStore feeds the catalog figures on the dashboard.
type dashboardCatalogStore interface {
	Count() (int64, error)
}

// dashboardUserStore feeds the customer count on the dashboard.
type dashboardUserStore interface {
	CountCustomers() (int64, error)
}

// DashboardStats is the back-office landing page summary. PendingOrders
// counts orders whose status is still pending, not all orders.
type DashboardStats struct {
	Products      int64   `json:"products"`
	Categories    int64   `json:"categories"`
	Customers     int64   `json:"customers"`
	Orders        int64   `json:"orders"`
	PendingOrders int64   `json:"pending_orders"`
	Feedback      int64   `json:"feedback"`
	Revenue       float64 `json:"revenue"`
}

// StatsCacheKey is where the dashboard summary is cached between refreshes.
// Listeners drop it when an order lands so admins see fresh numbers sooner
// than the TTL alone would allow.
const StatsCacheKey = "dashboard:stats"

// statsPool bounds the concurrent count queries a stats refresh may run.
var statsPool = workerpool.New(6)

// DashboardService aggregates the back-office summary counts, cached briefly
// so the landing page does not hammer the database.
type DashboardService struct {
	orders     dashboardOrderStore
	products   dashboardCatalogStore
	categories dashboardCatalogStore
	feedback   dashboardCatalogStore
	users      dashboardUserStore
	cacheTTL   time.Duration
}

// NewDashboardService wires the dashboard to its stores.
func NewDashboardService(orders dashboardOrderStore, products, categories, feedback dashboardCatalogStore, users dashboardUserStore) *DashboardService {
	return &DashboardService{
		orders:     orders,
		products:   products,
		categories: categories,
		feedback:   feedback,
		users:      users,
		cacheTTL:   30 * time.Second,
	}
}

// Stats returns the summary, serving from cache when fresh.
func (s *DashboardService) Stats() (DashboardStats, error) {
	var stats DashboardStats
	if cache.Get(StatsCacheKey, &stats) {
		return stats, nil
	}

	// Each figure is an independent query; fan them out through the pool and
	// keep the first error.
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	run := func(fn func() error) {
		wg.Add(1)
		submitErr := statsPool.SubmitWait(func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
		}
	}

	run(func() (err error) { stats.Products, err = s.products.Count(); return })
	run(func() (err error) { stats.Categories, err = s.categories.Count(); return })
	run(func() (err error) { stats.Customers, err = s.users.CountCustomers(); return })
	run(func() (err error) { stats.Orders, err = s.orders.Count(); return })
	run(func() (err error) { stats.PendingOrders, err = s.orders.CountByStatus(models.StatusPending); return })
	run(func() (err error) { stats.Feedback, err = s.feedback.Count(); return })
	run(func() (err error) { stats.Revenue, err = s.orders.Revenue(); return })
	wg.Wait()

	if firstErr != nil {
		return DashboardStats{}, firstErr
	}

	cache.Set(StatsCacheKey, stats, s.cacheTTL) //nolint:errcheck
	return stats, nil
}
