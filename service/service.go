// service/service.go
//
// Read-side reports over the ledger: balances, productivity, debt aging.
// Query-builder aggregation only; nothing here mutates.
package service

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
)

type WorkerBalanceRow struct {
	WorkerID       uint            `json:"worker_id"`
	Name           string          `json:"name"`
	Status         string          `json:"status"`
	TotalDebt      decimal.Decimal `json:"total_debt"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	OpenDebtCount  int64           `json:"open_debt_count"`
}

type WorkerBalanceFilter struct {
	Query    string
	Status   string
	Page     int // 1-based
	PageSize int
}

type ProductivityRow struct {
	WorkerID    uint            `json:"worker_id"`
	Name        string          `json:"name"`
	TotalLuwang decimal.Decimal `json:"total_luwang"`
	IsOutlier   bool            `json:"is_outlier"`
}

type AgingBucket struct {
	Bucket      string          `json:"bucket"`
	DebtCount   int             `json:"debt_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type Service interface {
	WorkerBalances(ctx context.Context, f WorkerBalanceFilter) ([]WorkerBalanceRow, int64, error)
	WorkerProductivity(ctx context.Context, sessionID uint) ([]ProductivityRow, error)
	DebtAging(ctx context.Context) ([]AgingBucket, error)
}

type service struct{ db *gorm.DB }

func NewService(db *gorm.DB) Service { return &service{db: db} }

func (s *service) WorkerBalances(ctx context.Context, f WorkerBalanceFilter) ([]WorkerBalanceRow, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 || f.PageSize > 500 {
		f.PageSize = 50
	}

	q := s.db.WithContext(ctx).
		Table("workers").
		Select(`
			workers.id AS worker_id,
			workers.name,
			workers.status,
			workers.total_debt,
			workers.total_paid,
			workers.current_balance,
			(SELECT COUNT(*) FROM debts
			   WHERE debts.worker_id = workers.id
			     AND debts.status NOT IN ('paid','settled','cancelled')
			     AND debts.balance > 0) AS open_debt_count
		`)

	if f.Query != "" {
		q = q.Where("workers.name LIKE ?", "%"+f.Query+"%")
	}
	if f.Status != "" {
		q = q.Where("workers.status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.PageSize
	var rows []WorkerBalanceRow
	err := q.Order("workers.current_balance DESC").
		Offset(offset).Limit(f.PageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// WorkerProductivity sums luwang per worker for a session and flags
// outliers more than two standard deviations from the mean.
func (s *service) WorkerProductivity(ctx context.Context, sessionID uint) ([]ProductivityRow, error) {
	var rows []ProductivityRow
	err := s.db.WithContext(ctx).
		Table("assignments").
		Select(`
			workers.id AS worker_id,
			workers.name,
			COALESCE(SUM(assignments.luwang_count), 0) AS total_luwang
		`).
		Joins("INNER JOIN workers ON workers.id = assignments.worker_id").
		Joins("INNER JOIN pitaks ON pitaks.id = assignments.pitak_id").
		Joins("INNER JOIN bukids ON bukids.id = pitaks.bukid_id").
		Where("bukids.session_id = ?", sessionID).
		Group("workers.id, workers.name").
		Order("total_luwang DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return rows, nil
	}

	var sum, sumSq float64
	for _, r := range rows {
		v, _ := r.TotalLuwang.Float64()
		sum += v
		sumSq += v * v
	}
	n := float64(len(rows))
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	stddev := math.Sqrt(variance)
	if stddev == 0 {
		return rows, nil
	}

	for i := range rows {
		v, _ := rows[i].TotalLuwang.Float64()
		rows[i].IsOutlier = math.Abs(v-mean) > 2*stddev
	}
	return rows, nil
}

func (s *service) DebtAging(ctx context.Context) ([]AgingBucket, error) {
	var debts []models.Debt
	err := s.db.WithContext(ctx).
		Where("balance > 0").
		Where("status NOT IN ?", []models.DebtStatus{models.DebtPaid, models.DebtSettled, models.DebtCancelled}).
		Find(&debts).Error
	if err != nil {
		return nil, err
	}

	buckets := []AgingBucket{
		{Bucket: "current", TotalAmount: decimal.Zero},
		{Bucket: "1-30", TotalAmount: decimal.Zero},
		{Bucket: "31-60", TotalAmount: decimal.Zero},
		{Bucket: "61-90", TotalAmount: decimal.Zero},
		{Bucket: "90+", TotalAmount: decimal.Zero},
	}

	now := time.Now().UTC()
	for _, d := range debts {
		idx := 0
		if d.DueDate != nil && d.DueDate.Before(now) {
			days := int(now.Sub(*d.DueDate).Hours() / 24)
			switch {
			case days <= 30:
				idx = 1
			case days <= 60:
				idx = 2
			case days <= 90:
				idx = 3
			default:
				idx = 4
			}
		}
		buckets[idx].DebtCount++
		buckets[idx].TotalAmount = buckets[idx].TotalAmount.Add(d.Balance)
	}
	return buckets, nil
}
