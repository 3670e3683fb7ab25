// Package http provides http transport for registry locks
package http

import (
	stdhttp "net/http"

	"lockbox/internal/modkit/httpkit"
	perr "lockbox/internal/platform/errors"
	"lockbox/internal/platform/logger"
	pnet "lockbox/internal/platform/net"
	phttp "lockbox/internal/platform/net/http"

	"lockbox/internal/services/api/locks/domain"
	lockdom "lockbox/internal/services/locks/domain"
)

// Register mounts the router
func Register(r httpkit.Router, workflow lockdom.WorkflowPort, query lockdom.QueryPort) {
	h := &handlers{workflow: workflow, query: query}
	r.Get("/registry-lock", h.status)
	httpkit.PostJSON[domain.RequestInput](r, "/registry-lock", h.request)
	httpkit.PostJSON[domain.VerifyInput](r, "/registry-lock/verify", h.verify)
}

type handlers struct {
	workflow lockdom.WorkflowPort
	query    lockdom.QueryPort
}

// status renders the console projection for one registrar
//
// This endpoint speaks the console's own wire format rather than the
// standard envelope: a fixed status/message/results shape on success,
// 403 when the caller lacks access, and a generic 500 for everything
// else so no internal state leaks
//
// @Summary Registry lock status for a registrar
// @Tags locks
// @Produce json
// @Param clientId query string true "Registrar client id"
// @Success 200 {object} domain.StatusPayload "ok"
// @Failure 403 {object} domain.StatusPayload "forbidden"
// @Router /registry-lock [get]
func (h *handlers) status(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()
	email := pnet.UserEmail(ctx)
	isAdmin := pnet.IsAdmin(ctx)

	clientID := r.URL.Query().Get("clientId")
	if clientID == "" {
		writeConsoleError(w, stdhttp.StatusInternalServerError)
		return
	}

	view, err := h.query.LockStatusForContact(ctx, clientID, email, isAdmin)
	if err != nil {
		status := stdhttp.StatusInternalServerError
		if perr.IsCode(err, perr.ErrorCodeForbidden) || perr.IsCode(err, perr.ErrorCodeUnauthorized) {
			status = stdhttp.StatusForbidden
		} else {
			logger.C(ctx).Error().Err(err).Str("client_id", clientID).Msg("registry lock status failed")
		}
		writeConsoleError(w, status)
		return
	}

	locks := make([]domain.LockJSON, 0, len(view.Locks))
	for _, l := range view.Locks {
		locks = append(locks, domain.LockJSON{
			FullyQualifiedDomainName: l.DomainName,
			LockedTime:               l.LockedTime,
			LockedBy:                 l.LockedBy,
			UserCanUnlock:            l.UserCanUnlock,
		})
	}
	phttp.JSON(w, stdhttp.StatusOK, domain.StatusPayload{
		Status:  "SUCCESS",
		Message: "Successful locks retrieval",
		Results: []domain.StatusResult{{
			LockEnabledForContact: view.LockEnabledForContact,
			Email:                 view.Email,
			ClientID:              view.ClientID,
			Locks:                 locks,
		}},
	})
}

func writeConsoleError(w stdhttp.ResponseWriter, status int) {
	phttp.JSON(w, status, map[string]any{
		"status":  "ERROR",
		"message": stdhttp.StatusText(status),
	})
}

// @Summary Request a registry lock or unlock
// @Tags locks
// @Accept json
// @Produce json
// @Param payload body domain.RequestInput true "Request"
// @Success 200 {object} domain.RequestOutput "ok"
// @Router /registry-lock [post]
func (h *handlers) request(r *stdhttp.Request, in domain.RequestInput) (any, error) {
	ctx := r.Context()
	isAdmin := pnet.IsAdmin(ctx)

	// admin actions carry no poc, the ledger row records them as admin
	pocID := in.PocID
	if pocID == "" && !isAdmin {
		pocID = pnet.UserEmail(ctx)
	}

	var (
		lock lockdom.Lock
		err  error
	)
	switch in.Action {
	case domain.ActionLock:
		lock, err = h.workflow.CreateLockRequest(ctx, in.FullyQualifiedDomainName, in.ClientID, pocID, isAdmin)
	case domain.ActionUnlock:
		lock, err = h.workflow.CreateUnlockRequest(ctx, in.FullyQualifiedDomainName, in.ClientID, isAdmin)
	default:
		return nil, perr.InvalidArgf("unknown action %q", in.Action)
	}
	if err != nil {
		return nil, err
	}

	out := domain.RequestOutput{
		FullyQualifiedDomainName: lock.DomainName,
		Action:                   in.Action,
		VerificationCode:         lock.VerificationCode,
	}
	if in.Action == domain.ActionLock && lock.LockRequestTime != nil {
		out.RequestedAt = *lock.LockRequestTime
	}
	if in.Action == domain.ActionUnlock && lock.UnlockRequestTime != nil {
		out.RequestedAt = *lock.UnlockRequestTime
	}
	return out, nil
}

// @Summary Verify a registry lock or unlock request
// @Tags locks
// @Accept json
// @Produce json
// @Param payload body domain.VerifyInput true "Verify"
// @Success 200 {object} domain.VerifyOutput "ok"
// @Router /registry-lock/verify [post]
func (h *handlers) verify(r *stdhttp.Request, in domain.VerifyInput) (any, error) {
	ctx := r.Context()
	isAdmin := pnet.IsAdmin(ctx)

	var (
		lock lockdom.Lock
		err  error
	)
	switch in.Action {
	case domain.ActionLock:
		lock, err = h.workflow.VerifyAndApplyLock(ctx, in.VerificationCode, isAdmin)
	case domain.ActionUnlock:
		lock, err = h.workflow.VerifyAndApplyUnlock(ctx, in.VerificationCode, isAdmin)
	default:
		return nil, perr.InvalidArgf("unknown action %q", in.Action)
	}
	if err != nil {
		return nil, err
	}

	out := domain.VerifyOutput{
		FullyQualifiedDomainName: lock.DomainName,
		Action:                   in.Action,
	}
	if in.Action == domain.ActionLock && lock.LockCompletionTime != nil {
		out.CompletedAt = *lock.LockCompletionTime
	}
	if in.Action == domain.ActionUnlock && lock.UnlockCompletionTime != nil {
		out.CompletedAt = *lock.UnlockCompletionTime
	}
	return out, nil
}
