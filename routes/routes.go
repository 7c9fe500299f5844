package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/controllers"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/middlewares"
)

func SetupRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{
		api.POST("/auth/login", controllers.Login)

		auth := api.Group("/", middlewares.Auth())
		{
			auth.GET("/auth/profile", controllers.Profile)
			auth.PUT("/auth/password", controllers.ChangePassword)

			workers := auth.Group("/workers")
			{
				workers.GET("/", controllers.ListWorkers)
				workers.POST("/", controllers.CreateWorker)
				workers.GET("/:id", controllers.GetWorker)
				workers.PUT("/:id", controllers.UpdateWorker)
				workers.PUT("/:id/status", controllers.UpdateWorkerStatus)
				workers.GET("/:id/debts", controllers.WorkerDebts)
			}

			debts := auth.Group("/debts")
			{
				debts.GET("/", controllers.ListDebts)
				debts.POST("/", controllers.CreateDebt)
				debts.GET("/limit-check", controllers.CheckDebtLimit)
				debts.GET("/interest-calc", controllers.CalculateInterest)
				debts.POST("/mark-overdue", controllers.MarkOverdueDebts)
				debts.PUT("/status", controllers.BulkUpdateDebtStatus)
				debts.POST("/history/:historyID/reverse", controllers.ReversePayment)
				debts.GET("/:id", controllers.GetDebt)
				debts.PUT("/:id", controllers.UpdateDebt)
				debts.DELETE("/:id", controllers.CancelDebt)
				debts.POST("/:id/interest", controllers.AddInterest)
				debts.POST("/:id/payments", controllers.MakePayment)
				debts.POST("/:id/adjust", controllers.AdjustDebt)
				debts.PUT("/:id/status", controllers.UpdateDebtStatus)
			}

			payments := auth.Group("/payments")
			{
				payments.GET("/", controllers.ListPayments)
				payments.GET("/:id", controllers.GetPayment)
				payments.POST("/:id/process", controllers.ProcessPayment)
				payments.PUT("/:id/status", controllers.UpdatePaymentStatus)
			}

			bukids := auth.Group("/bukids")
			{
				bukids.GET("/", controllers.ListBukids)
				bukids.POST("/", controllers.CreateBukid)
				bukids.GET("/:id", controllers.GetBukid)
				bukids.PUT("/:id", controllers.UpdateBukid)
				bukids.PUT("/:id/status", controllers.UpdateBukidStatus)
			}

			pitaks := auth.Group("/pitaks")
			{
				pitaks.GET("/", controllers.ListPitaks)
				pitaks.POST("/", controllers.CreatePitak)
				pitaks.PUT("/:id", controllers.UpdatePitak)
			}

			assignments := auth.Group("/assignments")
			{
				assignments.GET("/", controllers.ListAssignments)
				assignments.POST("/", controllers.CreateAssignment)
				assignments.PUT("/:id/luwang", controllers.UpdateLuwang)
			}

			sessions := auth.Group("/sessions")
			{
				sessions.GET("/", controllers.ListSessions)
				sessions.POST("/", controllers.CreateSession)
				sessions.PUT("/:id/default", controllers.SetDefaultSession)
				sessions.PUT("/:id/status", controllers.UpdateSessionStatus)
			}

			kabisilyas := auth.Group("/kabisilyas")
			{
				kabisilyas.GET("/", controllers.ListKabisilyas)
				kabisilyas.POST("/", controllers.CreateKabisilya)
				kabisilyas.GET("/:id", controllers.GetKabisilya)
				kabisilyas.PUT("/:id", controllers.UpdateKabisilya)
			}

			reports := auth.Group("/reports")
			{
				reports.GET("/dashboard", controllers.Dashboard)
				reports.GET("/worker-balances", controllers.WorkerBalanceReport)
				reports.GET("/productivity", controllers.WorkerProductivityReport)
				reports.GET("/debt-aging", controllers.DebtAgingReport)
			}

			admin := auth.Group("/admin", middlewares.RequireAdmin())
			{
				admin.POST("/users", controllers.Register)
				admin.GET("/settings", controllers.ListSettings)
				admin.PUT("/settings", controllers.UpdateSetting)
				admin.GET("/activity-logs", controllers.ListActivityLogs)
				admin.POST("/workers/:id/recompute", controllers.RecomputeWorker)
			}
		}
	}
}
