package handlers

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Akhil21232123/hirematrix/internal/config"
	"github.com/Akhil21232123/hirematrix/internal/llm"
	"github.com/Akhil21232123/hirematrix/internal/prompts"
	"github.com/Akhil21232123/hirematrix/internal/utils"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"`  // "ready" | "not_ready"
	Service string                    `json:"service"` // Service name
	Checks  map[string]ReadinessCheck `json:"checks"`  // Individual check results
}

type HealthHandler struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	config        *config.Config
	db            *gorm.DB
	rdb           *redis.Client
}

func NewHealthHandler(provider llm.Provider, promptManager prompts.PromptProvider, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		provider:      provider,
		promptManager: promptManager,
		config:        cfg,
		db:            db,
		rdb:           rdb,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "hirematrix",
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	if handler.provider == nil {
		checks["provider"] = ReadinessCheck{
			Status:  "failed",
			Message: "Oracle provider not initialized",
		}
		allChecksPass = false
	} else {
		checks["provider"] = ReadinessCheck{Status: "ok"}
	}

	if handler.promptManager == nil || len(handler.promptManager.GetTemplates()) == 0 {
		checks["prompt_manager"] = ReadinessCheck{
			Status:  "failed",
			Message: "No prompt templates loaded",
		}
		allChecksPass = false
	} else {
		checks["prompt_manager"] = ReadinessCheck{Status: "ok"}
	}

	if handler.config == nil {
		checks["configuration"] = ReadinessCheck{
			Status:  "failed",
			Message: "Configuration not loaded",
		}
		allChecksPass = false
	} else {
		checks["configuration"] = ReadinessCheck{Status: "ok"}
	}

	if handler.db == nil {
		checks["database"] = ReadinessCheck{
			Status:  "failed",
			Message: "Database not connected",
		}
		allChecksPass = false
	} else if sqlDB, err := handler.db.DB(); err != nil || sqlDB.PingContext(request.Context()) != nil {
		checks["database"] = ReadinessCheck{
			Status:  "failed",
			Message: "Database ping failed",
		}
		allChecksPass = false
	} else {
		checks["database"] = ReadinessCheck{Status: "ok"}
	}

	if handler.rdb == nil {
		checks["redis"] = ReadinessCheck{
			Status:  "failed",
			Message: "Redis not connected",
		}
		allChecksPass = false
	} else if err := handler.rdb.Ping(request.Context()).Err(); err != nil {
		checks["redis"] = ReadinessCheck{
			Status:  "failed",
			Message: "Redis ping failed",
		}
		allChecksPass = false
	} else {
		checks["redis"] = ReadinessCheck{Status: "ok"}
	}

	response := ReadinessResponse{
		Service: "hirematrix",
		Checks:  checks,
	}

	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
