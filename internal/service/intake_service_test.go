package service

import (
	"context"
	"testing"
	"time"

	"cna-archives/internal/dto"
	"cna-archives/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitRequest(t *testing.T, h *harness) *dto.SubmitDossierRequest {
	return &dto.SubmitDossierRequest{
		FondsID:   testutil.FondsID(t, h.db, "TECHNIQUE"),
		ObjetID:   testutil.ObjetID(t, h.db, "Contrat"),
		Analyse:   "  Plans du barrage de Kossou ",
		MotsCles:  "barrage, plans",
		DateDebut: "1971-03-01",
		DateFin:   "1972-12-31",
	}
}

func TestSubmitRoundTrip(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.at("2024-06-01T10:00:00Z")
	started, err := h.intake.StartIntake(ctx, h.marie)
	require.NoError(t, err)
	assert.True(t, started.StartedAt.Equal(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)))

	h.at("2024-06-01T10:07:59Z")
	req := submitRequest(t, h)
	resp, err := h.intake.Submit(ctx, h.marie, req)
	require.NoError(t, err)
	assert.Equal(t, 7, resp.TempsSaisie)

	row, err := h.intake.Get(h.marie, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "TECHNIQUE", row.Fonds)
	assert.Equal(t, "Contrat", row.Objet)
	assert.Equal(t, req.Analyse, row.Analyse)
	assert.Equal(t, req.MotsCles, row.MotsCles)
	assert.Equal(t, "1971-03-01", row.DateDebut)
	assert.Equal(t, "1972-12-31", row.DateFin)
	assert.Equal(t, "marie", row.Archiviste)
	assert.True(t, row.DateTraitement.Equal(time.Date(2024, 6, 1, 10, 7, 59, 0, time.UTC)))
	assert.Equal(t, 7, row.TempsSaisie)
}

func TestSubmitResetsTimer(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// 未打开表单时耗时为 0
	h.at("2024-06-01T09:00:00Z")
	resp, err := h.intake.Submit(ctx, h.paul, submitRequest(t, h))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.TempsSaisie)

	h.at("2024-06-01T09:03:30Z")
	resp, err = h.intake.Submit(ctx, h.paul, submitRequest(t, h))
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TempsSaisie)

	start, ok, err := h.store.IntakeStart(ctx, h.paul.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, start.Equal(time.Date(2024, 6, 1, 9, 3, 30, 0, time.UTC)))
}

func TestSubmitValidationOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	req := submitRequest(t, h)
	req.Analyse = "   "
	req.DateDebut, req.DateFin = "2020-01-02", "2020-01-01"
	_, err := h.intake.Submit(ctx, h.marie, req)
	assert.ErrorIs(t, err, ErrEmptyAnalysis)

	req.Analyse = "Rapport"
	_, err = h.intake.Submit(ctx, h.marie, req)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	req.DateDebut, req.DateFin = "2020-01-01", "2020-01-01"
	req.FondsID = 9999
	_, err = h.intake.Submit(ctx, h.marie, req)
	assert.ErrorIs(t, err, ErrNotFound)

	req.FondsID = testutil.FondsID(t, h.db, "JURIDIQUE")
	_, err = h.intake.Submit(ctx, h.marie, req)
	assert.NoError(t, err)

	total, err := h.dossierRepo.CountAll()
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestGetHidesOtherArchivistes(t *testing.T) {
	h := newHarness(t)
	resp, err := h.intake.Submit(context.Background(), h.marie, submitRequest(t, h))
	require.NoError(t, err)

	_, err = h.intake.Get(h.paul, resp.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	row, err := h.intake.Get(h.admin, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "marie", row.Archiviste)

	_, err = h.intake.Get(h.admin, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
