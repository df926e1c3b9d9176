package export

import (
	"fmt"
	"strings"
	"time"

	"cna-archives/internal/dto"
)

// Markdown 文字分析报告
func Markdown(data *dto.ReportData, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	var b strings.Builder

	b.WriteString("## 📊 ANALYSE DÉTAILLÉE DES STATISTIQUES\n\n")
	fmt.Fprintf(&b, "_Rapport généré le %s_\n\n", data.GeneratedAt.In(loc).Format("02/01/2006 à 15:04"))

	b.WriteString("### 📈 Vue d'ensemble\n")
	fmt.Fprintf(&b, "- **Total des dossiers traités :** %s\n", Int(data.TotalDossiers))
	fmt.Fprintf(&b, "- **Objectif quotidien actuel :** %d dossiers/jour\n\n", data.ObjectifQuotidien)

	b.WriteString("### ⏱️ Performance temporelle\n")
	fmt.Fprintf(&b, "- **Cette semaine :** %d dossiers traités\n", data.DossiersSemaine)
	fmt.Fprintf(&b, "- **Temps moyen de saisie (7j) :** %s minutes\n", Decimal(data.TempsMoyenSemaine))
	fmt.Fprintf(&b, "- **Ce mois :** %d dossiers traités\n", data.DossiersMois)
	fmt.Fprintf(&b, "- **Temps moyen de saisie (30j) :** %s minutes\n\n", Decimal(data.TempsMoyenMois))

	b.WriteString("### 👥 Performance des archivistes\n")
	if len(data.Archivistes) == 0 {
		b.WriteString("\nAucun archiviste trouvé dans le système.\n")
	}
	for _, a := range data.Archivistes {
		if a.Total == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n- **%s**\n", a.Username)
		fmt.Fprintf(&b, "  - Total : %d dossiers\n", a.Total)
		fmt.Fprintf(&b, "  - Cette semaine : %d dossiers\n", a.LastSevenDay)
		fmt.Fprintf(&b, "  - Temps moyen : %s minutes\n", Decimal(a.MeanMinutes))
		fmt.Fprintf(&b, "  - Statut : %s\n", a.TierLabel)
	}

	b.WriteString("\n### 📁 Répartition par fonds documentaires\n")
	switch {
	case len(data.RepartitionFonds) == 0:
		b.WriteString("Aucun fonds documentaire trouvé dans le système.\n")
	case data.TotalDossiers == 0:
		b.WriteString("Aucun dossier n'a été saisi pour le moment.\n")
	default:
		for _, f := range data.RepartitionFonds {
			if f.Count == 0 {
				continue
			}
			fmt.Fprintf(&b, "- **%s** : %d dossiers (%s%%)\n", f.Nom, f.Count, Decimal(f.Percentage))
		}
	}

	b.WriteString("\n### 💡 Recommandations\n")
	b.WriteString(data.Recommandation)
	b.WriteString("\n\n### 🎯 Projection\n")
	if data.MoyenneJour > 0 {
		fmt.Fprintf(&b, "Au rythme actuel (%s dossiers/jour), l'équipe pourrait traiter %s dossiers cette année.\n",
			Decimal(data.MoyenneJour), Int(int64(data.ProjectionAnnuelle)))
	} else {
		b.WriteString("Pas assez de données pour établir une projection annuelle.\n")
	}
	return b.String()
}
