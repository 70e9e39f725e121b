package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Akhil21232123/hirematrix/internal/exec"
	"github.com/Akhil21232123/hirematrix/internal/middleware"
	"github.com/Akhil21232123/hirematrix/internal/models"
	"github.com/Akhil21232123/hirematrix/internal/utils"
)

// RunHandler executes candidate code in a sandboxed one-shot container so
// the editor's "run" button works without trusting the code.
type RunHandler struct {
	runner exec.CodeRunner
	logger *zap.Logger
}

func NewRunHandler(runner exec.CodeRunner, logger *zap.Logger) *RunHandler {
	return &RunHandler{runner: runner, logger: logger}
}

func (h *RunHandler) RunCodeHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RunCodeRequest](r)

	output, err := h.runner.RunOnce(r.Context(), req.Language, req.Code, exec.DefaultLimits())
	if err != nil {
		h.logger.Error("Sandbox run failed",
			zap.String("language", req.Language),
			zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "sandbox_error",
			Message: "Failed to execute code",
		})
		return
	}

	utils.JSON(w, http.StatusOK, models.RunResponse{
		Stdout:   output.Stdout,
		Stderr:   output.Stderr,
		ExitCode: output.Exit,
		TimedOut: output.TimedOut,
	})
}
