package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/terceiro-labs/provision-backend/internal/domain/user"
	"github.com/terceiro-labs/provision-backend/internal/handler/http/middleware"
	"github.com/terceiro-labs/provision-backend/internal/pkg/jwt"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth      AuthHandler
	User      UserHandler
	Master    MasterHandler
	Company   CompanyHandler
	Employee  EmployeeHandler
	Provision ProvisionHandler
	Punch     PunchHandler
	Dashboard DashboardHandler
	Report    ReportHandler
	File      FileHandler
}

type RouterOptions struct {
	Logger      *slog.Logger
	LogLevel    slog.Level
	CORSOrigins []string
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.RequestID)

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	byID := middleware.UUIDParam("id")
	masterWrite := middleware.RequirePermission(user.PermissionMasterManage)
	authenticated := func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				authenticated(r)
				r.Get("/me", h.User.GetMe)
				r.Put("/me", h.User.UpdateMe)
				r.Post("/me/photo", h.User.UploadPhoto)
				r.Post("/change-password", h.User.ChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			authenticated(r)

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.User.ListUsers)
				r.With(byID).Post("/{id}/toggle-active", h.User.ToggleActive)
				r.With(byID).Post("/{id}/toggle-staff", h.User.ToggleStaff)
			})

			// Registry: read for everyone signed in, write for admins
			r.Route("/states", func(r chi.Router) {
				r.Get("/", h.Master.ListStates)
				r.With(masterWrite).Post("/", h.Master.CreateState)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(byID)
					r.Get("/", h.Master.GetState)
					r.With(masterWrite).Put("/", h.Master.UpdateState)
					r.With(masterWrite).Delete("/", h.Master.DeleteState)
				})
			})

			r.Route("/cities", func(r chi.Router) {
				r.Get("/", h.Master.ListCities)
				r.With(masterWrite).Post("/", h.Master.CreateCity)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(byID)
					r.Get("/", h.Master.GetCity)
					r.With(masterWrite).Put("/", h.Master.UpdateCity)
					r.With(masterWrite).Delete("/", h.Master.DeleteCity)
				})
			})

			r.Route("/locations", func(r chi.Router) {
				r.Get("/", h.Master.ListLocations)
				r.With(masterWrite).Post("/", h.Master.CreateLocation)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(byID)
					r.Get("/", h.Master.GetLocation)
					r.With(masterWrite).Put("/", h.Master.UpdateLocation)
					r.With(masterWrite).Delete("/", h.Master.DeleteLocation)
				})
			})

			r.Route("/positions", func(r chi.Router) {
				r.Get("/", h.Master.ListPositions)
				r.With(masterWrite).Post("/", h.Master.CreatePosition)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(byID)
					r.Get("/", h.Master.GetPosition)
					r.With(masterWrite).Put("/", h.Master.UpdatePosition)
					r.With(masterWrite).Delete("/", h.Master.DeletePosition)
				})
			})

			r.Route("/companies", func(r chi.Router) {
				companyWrite := middleware.RequirePermission(user.PermissionCompanyManage)

				r.Get("/", h.Company.List)
				r.With(companyWrite).Post("/", h.Company.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(byID)
					r.Get("/", h.Company.GetByID)
					r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).Get("/employees", h.Company.ListEmployees)
					r.With(companyWrite).Put("/", h.Company.Update)
					r.With(companyWrite).Delete("/", h.Company.Delete)
				})
			})

			r.Route("/managers", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				companyWrite := middleware.RequirePermission(user.PermissionCompanyManage)

				r.Get("/", h.Company.ListManagers)
				r.With(companyWrite).Post("/", h.Company.CreateManager)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(byID)
					r.Get("/", h.Company.GetManager)
					r.With(companyWrite).Put("/", h.Company.UpdateManager)
					r.With(companyWrite).Delete("/", h.Company.DeleteManager)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(byID)
					r.Get("/", h.Employee.GetEmployee)
					r.Put("/", h.Employee.UpdateEmployee)
					r.Delete("/", h.Employee.DeleteEmployee)
				})
			})

			// Employees only ever see their own provisions and punches
			r.Route("/provisions", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionProvisionViewOwn))
				r.Get("/", h.Provision.List)
				r.Get("/summary", h.Provision.Summary)
				r.With(middleware.RequirePermission(user.PermissionProvisionCreate)).Post("/", h.Provision.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(byID)
					r.Get("/", h.Provision.Get)
					r.Get("/history", h.Provision.History)
					r.Get("/photo", h.Provision.Photo)
					r.With(middleware.RequirePermission(user.PermissionProvisionEdit)).Put("/", h.Provision.Update)
					r.With(middleware.RequirePermission(user.PermissionProvisionValidate)).Post("/transition", h.Provision.Transition)
				})
			})

			r.Route("/punches", func(r chi.Router) {
				r.Get("/", h.Punch.List)
				r.Get("/summary", h.Punch.Summary)
				r.With(middleware.RequireEmployee).Post("/", h.Punch.Create)
				r.With(byID).Get("/{id}", h.Punch.Get)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/", h.Dashboard.GetGeneral)
				r.Get("/charts", h.Dashboard.GetCharts)
				r.Get("/financial", h.Dashboard.GetFinancial)
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/employees/summary", h.Employee.GetSummary)
				r.Get("/", h.Report.List)
				r.Post("/", h.Report.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(byID)
					r.Get("/", h.Report.Get)
					r.Put("/", h.Report.Update)
					r.Delete("/", h.Report.Delete)
				})
			})

			r.Get("/files/*", h.File.Serve)
		})
	})

	return r
}
