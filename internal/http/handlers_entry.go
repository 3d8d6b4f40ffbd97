package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Siddharth05b/Solar-Energy-Tracker/internal/core"
	"github.com/Siddharth05b/Solar-Energy-Tracker/internal/log"
	"github.com/Siddharth05b/Solar-Energy-Tracker/internal/store"
)

// handleSaveEntry records or updates the production reading for a date.
// One reading per date: submitting a date that already has a reading
// replaces its value while keeping the original identifier.
func (s *Server) handleSaveEntry(w http.ResponseWriter, r *http.Request) {
	if errResp := RequirePOST(r); errResp != nil {
		errResp.Write(w)
		return
	}
	if errResp := ParseFormOrFail(r); errResp != nil {
		s.logger.ErrorContext(r.Context(), "Parse form error",
			log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
		errResp.Write(w)
		return
	}

	dateStr := strings.TrimSpace(r.Form.Get("date"))
	date, err := core.ParseDate(dateStr)
	if err != nil {
		UnprocessableEntityError("Invalid date, expected YYYY-MM-DD").Write(w)
		return
	}

	productionStr := strings.TrimSpace(r.Form.Get("production"))
	production, err := strconv.ParseFloat(productionStr, 64)
	if err != nil {
		UnprocessableEntityError("Invalid production value").Write(w)
		return
	}
	if err := core.ValidateProduction(production); err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	entry, err := s.store.Upsert(r.Context(), date, production)
	if err != nil {
		var persistErr *store.PersistError
		if !errors.As(err, &persistErr) {
			s.logger.ErrorContext(r.Context(), "Failed to save entry",
				log.FieldError, err,
				log.FieldDate, date.String(),
				log.FieldProduction, production)
			InternalServerError("Failed to save entry").Write(w)
			return
		}
		// The in-memory state is authoritative: the entry is saved for
		// this session even though durable storage failed.
		s.logger.ErrorContext(r.Context(), "Entry saved but persisting failed",
			log.FieldError, err,
			log.FieldEntryID, entry.ID,
			log.FieldDate, date.String())
		NewHTMXResponse().
			TriggerEntrySaved(entry).
			TriggerWeekRefresh(entry.Date).
			TriggerFormReset().
			TriggerWarningNotification("Saved for this session, but writing to storage failed").
			BodyHTML(`<div class="warning">Saved in memory only</div>`).
			Write(w)
		return
	}

	s.logger.InfoContext(r.Context(), "Entry saved",
		log.FieldEntryID, entry.ID,
		log.FieldDate, entry.Date.String(),
		log.FieldProduction, entry.Production,
		log.FieldOperation, log.OpUpsert)

	NewHTMXResponse().
		TriggerEntrySaved(entry).
		TriggerWeekRefresh(entry.Date).
		TriggerFormReset().
		TriggerSuccessNotification("Recorded " + formatKWh(entry.Production) + " for " + entry.Date.String()).
		BodyHTML(`<div class="success">Saved</div>`).
		Write(w)
}

// handleDeleteEntry removes an entry by identifier. The deleted entry is
// echoed back in the HX-Trigger payload so the client can offer undo.
func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if errResp := RequireDeleteOrPOST(r); errResp != nil {
		errResp.Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		s.logger.ErrorContext(r.Context(), "Parse delete request error",
			log.FieldError, err, log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	entryID := parser.Get("id")
	if entryID == "" {
		BadRequestError("Missing entry id").Write(w)
		return
	}

	removed, err := s.store.Remove(r.Context(), entryID)
	persistFailed := false
	if err != nil {
		var persistErr *store.PersistError
		if !errors.As(err, &persistErr) {
			s.logger.ErrorContext(r.Context(), "Failed to delete entry",
				log.FieldError, err, log.FieldEntryID, entryID)
			InternalServerError("Failed to delete entry").Write(w)
			return
		}
		// In-memory state is authoritative: the removal holds for this
		// session even though durable storage failed.
		persistFailed = true
		s.logger.ErrorContext(r.Context(), "Entry deleted but persisting failed",
			log.FieldError, err, log.FieldEntryID, entryID)
	}

	// Removing an id that no longer exists is a no-op, not an error.
	if removed == nil {
		s.logger.InfoContext(r.Context(), "Delete requested for unknown entry",
			log.FieldEntryID, entryID, log.FieldOperation, log.OpRemove)
		NewHTMXResponse().
			TriggerNotification(NotificationInfo, "Entry was already removed", 2000).
			Write(w)
		return
	}

	s.logger.InfoContext(r.Context(), "Entry deleted",
		log.FieldEntryID, removed.ID,
		log.FieldDate, removed.Date.String(),
		log.FieldOperation, log.OpRemove)

	resp := NewHTMXResponse().
		TriggerEntryDeleted(*removed).
		TriggerWeekRefresh(removed.Date)
	if persistFailed {
		resp.TriggerWarningNotification("Removed for this session, but writing to storage failed")
	} else {
		resp.TriggerSuccessNotification("Removed " + removed.Date.String())
	}
	resp.Write(w)
}

// handleRestoreEntry reinserts a previously deleted entry, keeping its
// original identifier. If another entry was recorded for the same date in
// the meantime, the restored entry replaces it.
func (s *Server) handleRestoreEntry(w http.ResponseWriter, r *http.Request) {
	if errResp := RequirePOST(r); errResp != nil {
		errResp.Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	date, err := core.ParseDate(parser.Get("date"))
	if err != nil {
		UnprocessableEntityError("Invalid date, expected YYYY-MM-DD").Write(w)
		return
	}
	production, err := strconv.ParseFloat(parser.Get("production"), 64)
	if err != nil {
		UnprocessableEntityError("Invalid production value").Write(w)
		return
	}

	entryID := parser.Get("id")
	if entryID == "" {
		BadRequestError("Missing entry id").Write(w)
		return
	}

	entry := core.Entry{
		ID:         entryID,
		Date:       date,
		Production: production,
	}
	if err := entry.Validate(); err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	restored, err := s.store.Restore(r.Context(), entry)
	persistFailed := false
	if err != nil {
		var persistErr *store.PersistError
		if !errors.As(err, &persistErr) {
			s.logger.ErrorContext(r.Context(), "Failed to restore entry",
				log.FieldError, err, log.FieldEntryID, entry.ID)
			InternalServerError("Failed to restore entry").Write(w)
			return
		}
		persistFailed = true
		s.logger.ErrorContext(r.Context(), "Entry restored but persisting failed",
			log.FieldError, err, log.FieldEntryID, entry.ID)
	}

	s.logger.InfoContext(r.Context(), "Entry restored",
		log.FieldEntryID, restored.ID,
		log.FieldDate, restored.Date.String(),
		log.FieldOperation, log.OpRestore)

	resp := NewHTMXResponse().
		TriggerEntryRestored(restored).
		TriggerWeekRefresh(restored.Date)
	if persistFailed {
		resp.TriggerWarningNotification("Restored for this session, but writing to storage failed")
	} else {
		resp.TriggerSuccessNotification("Restored " + restored.Date.String())
	}
	resp.Write(w)
}
