package service

import (
	"fmt"
	"strings"
	"testing"

	"cna-archives/internal/dto"
	"cna-archives/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Pages: 3, Size: 10, Offset: 0}, Paginate(23, 1, 10))
	assert.Equal(t, Pagination{Page: 3, Pages: 3, Size: 10, Offset: 20}, Paginate(23, 3, 10))
	assert.Equal(t, Pagination{Page: 3, Pages: 3, Size: 10, Offset: 20}, Paginate(23, 99, 10))
	assert.Equal(t, Pagination{Page: 1, Pages: 3, Size: 10, Offset: 0}, Paginate(23, -4, 10))
	assert.Equal(t, Pagination{Page: 1, Pages: 0, Size: 25, Offset: 0}, Paginate(0, 5, 25))
	assert.Equal(t, Pagination{Page: 2, Pages: 2, Size: 10, Offset: 10}, Paginate(20, 2, 10))
}

// seed23 写入 23 条记录：marie 15 条（TECHNIQUE），paul 8 条（JURIDIQUE）
func seed23(t *testing.T, h *harness) {
	for i := 0; i < 23; i++ {
		owner, fonds := h.marie, "TECHNIQUE"
		if i >= 15 {
			owner, fonds = h.paul, "JURIDIQUE"
		}
		h.dossier(t, owner, fonds, fmt.Sprintf("2024-06-01T%02d:00:00Z", i), i%5+1)
	}
}

func TestSearchPagination(t *testing.T) {
	h := newHarness(t)
	h.at("2024-06-02T12:00:00Z")
	seed23(t, h)

	var sizes []int
	for page := 1; page <= 3; page++ {
		res, err := h.dossiers.Search(h.admin, DossierCriteria{}, "", page)
		require.NoError(t, err)
		assert.Equal(t, int64(23), res.Total)
		assert.Equal(t, 3, res.Pages)
		assert.Equal(t, page, res.Page)
		sizes = append(sizes, len(res.Items))
	}
	assert.Equal(t, []int{10, 10, 3}, sizes)

	first, err := h.dossiers.Search(h.admin, DossierCriteria{}, "", 1)
	require.NoError(t, err)
	assert.Equal(t, "paul", first.Items[0].Archiviste)
	assert.False(t, first.Items[0].DateTraitement.Before(first.Items[1].DateTraitement))

	clamped, err := h.dossiers.Search(h.admin, DossierCriteria{}, "", 42)
	require.NoError(t, err)
	assert.Equal(t, 3, clamped.Page)
	assert.Len(t, clamped.Items, 3)
}

func TestSearchEmptyResult(t *testing.T) {
	h := newHarness(t)

	res, err := h.dossiers.Search(h.admin, DossierCriteria{Filter: repository.DossierFilter{Text: "rien"}}, "", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)
	assert.Equal(t, 0, res.Pages)
	assert.Equal(t, 1, res.Page)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestNonAdminSeesOnlyOwnDossiers(t *testing.T) {
	h := newHarness(t)
	h.at("2024-06-02T12:00:00Z")
	seed23(t, h)

	// un filtre archiviste explicite ne permet pas de voir les autres
	c := DossierCriteria{Filter: repository.DossierFilter{Archivistes: []string{"marie"}}}
	res, err := h.dossiers.Search(h.paul, c, "", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(8), res.Total)
	for _, row := range res.Items {
		assert.Equal(t, "paul", row.Archiviste)
	}

	listing, err := h.dossiers.List(h.marie, DossierCriteria{}, "", 1, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(15), listing.Total)

	analysis, err := h.dossiers.Analyze(h.paul, DossierCriteria{})
	require.NoError(t, err)
	assert.Equal(t, 8, analysis.Stats.Total)

	content, _, err := h.dossiers.ExportSearch(h.paul, DossierCriteria{}, "")
	require.NoError(t, err)
	assert.NotContains(t, string(content), "marie")
}

func TestListing(t *testing.T) {
	h := newHarness(t)
	h.at("2024-06-02T12:00:00Z")
	seed23(t, h)

	listing, err := h.dossiers.List(h.admin, DossierCriteria{}, "temps_desc", 1, 0, []string{"fonds,temps_saisie"})
	require.NoError(t, err)
	assert.Equal(t, 25, listing.PerPage)
	assert.Equal(t, 1, listing.Pages)
	assert.Equal(t, []dto.ColumnInfo{{Key: "fonds", Label: "Fonds"}, {Key: "temps_saisie", Label: "Temps (min)"}}, listing.Columns)
	require.Len(t, listing.Rows, 23)
	assert.Equal(t, 5, listing.Rows[0]["temps_saisie"])
	assert.NotContains(t, listing.Rows[0], "analyse")

	// temps i%5+1 : 4×15 + (1+2+3) = 66 minutes
	assert.Equal(t, 23, listing.Stats.Total)
	assert.Equal(t, 66, listing.Stats.TotalMinutes)
	assert.Equal(t, 2, listing.Stats.DistinctFonds)
	assert.InDelta(t, 2.87, listing.Stats.MeanMinutes, 0.001)

	_, err = h.dossiers.List(h.admin, DossierCriteria{}, "", 1, 30, nil)
	assert.ErrorIs(t, err, ErrInvalidFilter)
	_, err = h.dossiers.List(h.admin, DossierCriteria{}, "", 1, 25, []string{"mot_de_passe"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
	_, err = h.dossiers.List(h.admin, DossierCriteria{}, "hasard", 1, 25, nil)
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestPeriodCriteria(t *testing.T) {
	h := newHarness(t)
	h.at("2024-06-10T12:00:00Z")
	h.dossier(t, h.marie, "TECHNIQUE", "2024-06-10T08:00:00Z", 4)
	// 22:30 UTC le 9 juin = 00:30 le 10 juin à Paris
	h.dossier(t, h.marie, "TECHNIQUE", "2024-06-09T22:30:00Z", 4)
	h.dossier(t, h.marie, "TECHNIQUE", "2024-06-05T08:00:00Z", 4)
	h.dossier(t, h.marie, "TECHNIQUE", "2024-01-05T08:00:00Z", 4)
	h.dossier(t, h.marie, "TECHNIQUE", "2023-12-31T08:00:00Z", 4)

	cases := map[string]int64{"": 5, "all": 5, "today": 2, "week": 3, "month": 3, "year": 4}
	for p, want := range cases {
		res, err := h.dossiers.Search(h.admin, DossierCriteria{Period: p}, "", 1)
		require.NoError(t, err, p)
		assert.Equal(t, want, res.Total, p)
	}

	res, err := h.dossiers.Search(h.admin, DossierCriteria{Period: "custom", From: "2024-01-05", To: "2024-06-05"}, "", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	_, err = h.dossiers.Search(h.admin, DossierCriteria{Period: "custom", From: "2024-06-05", To: "2024-01-05"}, "", 1)
	assert.ErrorIs(t, err, ErrInvalidFilter)
	_, err = h.dossiers.Search(h.admin, DossierCriteria{Period: "decennie"}, "", 1)
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestAnalyze(t *testing.T) {
	h := newHarness(t)
	h.dossier(t, h.marie, "TECHNIQUE", "2024-06-01T08:00:00Z", 2)
	h.dossier(t, h.marie, "TECHNIQUE", "2024-06-01T09:00:00Z", 4)
	h.dossier(t, h.paul, "JURIDIQUE", "2024-06-02T08:00:00Z", 9)

	a, err := h.dossiers.Analyze(h.admin, DossierCriteria{})
	require.NoError(t, err)
	assert.Equal(t, 3, a.Temps.Count)
	assert.Equal(t, 2, a.Temps.Min)
	assert.Equal(t, 9, a.Temps.Max)
	assert.Equal(t, 4.0, a.Temps.Median)
	assert.Equal(t, 15, a.Temps.Total)
	assert.Equal(t, "Très efficace", a.Efficacite)
	require.Len(t, a.RepartitionFonds, 2)
	assert.Equal(t, "TECHNIQUE", a.RepartitionFonds[0].Nom)
	require.Len(t, a.ParJour, 2)
	assert.Equal(t, "2024-06-01", a.ParJour[0].Date)

	empty, err := h.dossiers.Analyze(h.admin, DossierCriteria{Filter: repository.DossierFilter{Text: "rien"}})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Temps.Count)
	assert.Equal(t, 0.0, empty.Temps.Mean)
	assert.Empty(t, empty.Efficacite)
}

func TestExports(t *testing.T) {
	h := newHarness(t)
	h.at("2024-06-02T12:00:00Z")
	h.dossier(t, h.marie, "TECHNIQUE", "2024-06-01T08:00:00Z", 2)
	h.dossier(t, h.paul, "JURIDIQUE", "2024-06-02T08:00:00Z", 9)

	content, name, err := h.dossiers.ExportSearch(h.admin, DossierCriteria{}, "")
	require.NoError(t, err)
	assert.Equal(t, "recherche_archives_20240602_140000.csv", name)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Fonds,Objet,Analyse,Mots-clés,Date début,Date fin,Archiviste,Date saisie,Heure,Temps (min)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "JURIDIQUE,"))

	content, name, err = h.dossiers.ExportListing(h.admin, DossierCriteria{}, "date_asc", []string{"archiviste,temps_saisie"})
	require.NoError(t, err)
	assert.Equal(t, "saisies_20240602_140000.csv", name)
	assert.Equal(t, "Archiviste,Temps (min)\nmarie,2\npaul,9\n", string(content))

	content, name, err = h.dossiers.ExportAll()
	require.NoError(t, err)
	assert.Equal(t, "export_complet_archives_20240602_140000.csv", name)
	lines = strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID,ID fonds,Fonds"))
	assert.Contains(t, lines[1], ",JURIDIQUE,")
	assert.Contains(t, lines[2], ",TECHNIQUE,")
}
