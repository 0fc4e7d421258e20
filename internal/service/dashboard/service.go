package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/terceiro-labs/provision-backend/internal/domain/dashboard"
	"github.com/terceiro-labs/provision-backend/internal/domain/provision"
)

const (
	chartTopCompanies  = 10
	financialTopPeople = 20
)

// TimeSheetReader supplies the clock stamps worked hours are summed from.
type TimeSheetReader interface {
	ListTimeSheets(ctx context.Context, filter provision.ProvisionFilter) ([]provision.TimeSheet, error)
}

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	timeSheets TimeSheetReader
	now        func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, timeSheets TimeSheetReader) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		timeSheets:          timeSheets,
		now:                 time.Now,
	}
}

// GetGeneral implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetGeneral(ctx context.Context, filter dashboard.DashboardFilter) (dashboard.GeneralResponse, error) {
	if err := filter.Validate(); err != nil {
		return dashboard.GeneralResponse{}, err
	}
	scope := filter.Scope()

	var (
		employees dashboard.EmployeeCounts
		statuses  []dashboard.StatusCount
		approved  dashboard.ValueTotals
		hours     workedHours
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		employees, err = s.DashboardRepository.EmployeeCounts(gCtx, filter.CompanyID)
		return err
	})

	g.Go(func() error {
		var err error
		statuses, err = s.DashboardRepository.StatusCounts(gCtx, scope)
		return err
	})

	g.Go(func() error {
		var err error
		approved, err = s.DashboardRepository.ApprovedTotals(gCtx, scope)
		return err
	})

	g.Go(func() error {
		var err error
		hours, err = s.approvedHours(gCtx, filter)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.GeneralResponse{}, err
	}

	resp := dashboard.GeneralResponse{
		Employees: dashboard.EmployeeStats{
			Active:   employees.Active,
			Inactive: employees.Inactive,
			Total:    employees.Active + employees.Inactive,
		},
		Financial: dashboard.FinancialStats{
			ApprovedValue: approved.Total.StringFixed(2),
			WorkedHours:   provision.Hours(hours.total).StringFixed(2),
		},
	}
	for _, sc := range statuses {
		resp.Provisions.Total += sc.Count
		switch sc.Status {
		case provision.StatusApproved:
			resp.Provisions.Approved = sc.Count
		case provision.StatusPending:
			resp.Provisions.Pending = sc.Count
		}
	}
	return resp, nil
}

// GetCharts implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetCharts(ctx context.Context, filter dashboard.ChartsFilter) (dashboard.ChartsResponse, error) {
	if err := filter.Validate(); err != nil {
		return dashboard.ChartsResponse{}, err
	}
	scope := filter.Scope(s.now())

	var (
		statuses  []dashboard.StatusCount
		daily     []dashboard.DailyVolume
		perComp   []dashboard.CompanyCount
		companies []dashboard.CompanyTotals
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		statuses, err = s.DashboardRepository.StatusCounts(gCtx, scope)
		return err
	})

	g.Go(func() error {
		var err error
		daily, err = s.DashboardRepository.DailyVolume(gCtx, scope)
		return err
	})

	g.Go(func() error {
		var err error
		perComp, err = s.DashboardRepository.EmployeesPerCompany(gCtx, chartTopCompanies)
		return err
	})

	g.Go(func() error {
		var err error
		companies, err = s.DashboardRepository.ApprovedByCompany(gCtx, scope, chartTopCompanies)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.ChartsResponse{}, err
	}

	resp := dashboard.ChartsResponse{
		StatusDistribution:  make([]dashboard.StatusCountResponse, 0, len(statuses)),
		ProvisionsPerDay:    make([]dashboard.DailyVolumeResponse, 0, len(daily)),
		EmployeesPerCompany: make([]dashboard.CompanyCountResponse, 0, len(perComp)),
		ValuesPerCompany:    make([]dashboard.CompanyTotalResponse, 0, len(companies)),
	}
	for _, sc := range statuses {
		resp.StatusDistribution = append(resp.StatusDistribution, dashboard.StatusCountResponse{Status: sc.Status, Count: sc.Count})
	}
	for _, d := range daily {
		resp.ProvisionsPerDay = append(resp.ProvisionsPerDay, dashboard.DailyVolumeResponse{
			Date:  d.Date.Format("2006-01-02"),
			Count: d.Count,
			Value: d.Value.StringFixed(2),
		})
	}
	for _, c := range perComp {
		resp.EmployeesPerCompany = append(resp.EmployeesPerCompany, dashboard.CompanyCountResponse{
			CompanyID:   c.CompanyID,
			CompanyName: c.CompanyName,
			Count:       c.Count,
		})
	}
	for _, c := range companies {
		resp.ValuesPerCompany = append(resp.ValuesPerCompany, companyTotal(c, nil))
	}
	return resp, nil
}

// GetFinancial implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetFinancial(ctx context.Context, filter dashboard.DashboardFilter) (dashboard.FinancialResponse, error) {
	if err := filter.Validate(); err != nil {
		return dashboard.FinancialResponse{}, err
	}
	scope := filter.Scope()

	var (
		totals    dashboard.ValueTotals
		companies []dashboard.CompanyTotals
		people    []dashboard.EmployeeTotals
		hours     workedHours
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		totals, err = s.DashboardRepository.ApprovedTotals(gCtx, scope)
		return err
	})

	g.Go(func() error {
		var err error
		companies, err = s.DashboardRepository.ApprovedByCompany(gCtx, scope, 0)
		return err
	})

	g.Go(func() error {
		var err error
		people, err = s.DashboardRepository.ApprovedByEmployee(gCtx, scope, financialTopPeople)
		return err
	})

	g.Go(func() error {
		var err error
		hours, err = s.approvedHours(gCtx, filter)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.FinancialResponse{}, err
	}

	resp := dashboard.FinancialResponse{
		Summary: dashboard.FinancialSummary{
			Provisions:   totals.Count,
			TotalValue:   totals.Total.StringFixed(2),
			AverageValue: totals.Average.StringFixed(2),
			WorkedHours:  provision.Hours(hours.total).StringFixed(2),
		},
		ByCompany:  make([]dashboard.CompanyTotalResponse, 0, len(companies)),
		ByEmployee: make([]dashboard.EmployeeTotalResponse, 0, len(people)),
	}
	for _, c := range companies {
		worked := hours.byCompany[c.CompanyID]
		resp.ByCompany = append(resp.ByCompany, companyTotal(c, &worked))
	}
	for _, e := range people {
		resp.ByEmployee = append(resp.ByEmployee, dashboard.EmployeeTotalResponse{
			EmployeeID:   e.EmployeeID,
			EmployeeName: e.EmployeeName,
			CompanyName:  e.CompanyName,
			Provisions:   e.Count,
			TotalValue:   e.Total.StringFixed(2),
			AverageValue: e.Average.StringFixed(2),
			WorkedHours:  provision.Hours(hours.byEmployee[e.EmployeeID]).StringFixed(2),
		})
	}
	return resp, nil
}

// ==================== HELPER FUNCTIONS ====================

type workedHours struct {
	total      time.Duration
	byCompany  map[string]time.Duration
	byEmployee map[string]time.Duration
}

// approvedHours sums worked time of approved provisions with the same
// calculator used for single records.
func (s *DashboardServiceImpl) approvedHours(ctx context.Context, filter dashboard.DashboardFilter) (workedHours, error) {
	sheets, err := s.timeSheets.ListTimeSheets(ctx, filter.ApprovedProvisions())
	if err != nil {
		return workedHours{}, err
	}

	hours := workedHours{
		byCompany:  make(map[string]time.Duration),
		byEmployee: make(map[string]time.Duration),
	}
	for _, sheet := range sheets {
		d := sheet.WorkedDuration()
		hours.total += d
		hours.byCompany[sheet.CompanyID] += d
		hours.byEmployee[sheet.EmployeeID] += d
	}
	return hours, nil
}

func companyTotal(c dashboard.CompanyTotals, worked *time.Duration) dashboard.CompanyTotalResponse {
	resp := dashboard.CompanyTotalResponse{
		CompanyID:    c.CompanyID,
		CompanyName:  c.CompanyName,
		Provisions:   c.Count,
		TotalValue:   c.Total.StringFixed(2),
		AverageValue: c.Average.StringFixed(2),
	}
	if worked != nil {
		resp.WorkedHours = provision.Hours(*worked).StringFixed(2)
	}
	return resp
}
