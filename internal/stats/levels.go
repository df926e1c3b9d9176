package stats

// Tier 档案员效率等级
type Tier string

const (
	TierExcellent        Tier = "excellent"
	TierGood             Tier = "bon"
	TierNeedsImprovement Tier = "a_ameliorer"
)

// Label 显示名称
func (t Tier) Label() string {
	switch t {
	case TierExcellent:
		return "Excellent"
	case TierGood:
		return "Bon"
	default:
		return "À améliorer"
	}
}

// EfficiencyTier 以最近7天数量对比每日目标的倍数
func EfficiencyTier(lastSevenDays, goal int) Tier {
	switch {
	case lastSevenDays >= goal*5:
		return TierExcellent
	case lastSevenDays >= goal*3:
		return TierGood
	default:
		return TierNeedsImprovement
	}
}

// Band 完成率色带
type Band string

const (
	BandGreen Band = "vert"
	BandAmber Band = "orange"
	BandRed   Band = "rouge"
)

// AttainmentBand 完成率 ≥90 绿色，≥70 橙色，其余红色
func AttainmentBand(pct float64) Band {
	switch {
	case pct >= 90:
		return BandGreen
	case pct >= 70:
		return BandAmber
	default:
		return BandRed
	}
}

// TimeEfficiency 平均录入时长评价
func TimeEfficiency(meanMinutes float64) string {
	switch {
	case meanMinutes <= 8:
		return "Très efficace"
	case meanMinutes <= 12:
		return "Efficace"
	default:
		return "À améliorer"
	}
}

// Recommendation 根据30天平均录入时长给出建议
func Recommendation(meanMinutes30 float64) string {
	switch {
	case meanMinutes30 > 15:
		return "Le temps de saisie moyen est élevé. Envisagez une formation ou une simplification du processus."
	case meanMinutes30 > 10:
		return "Le temps de saisie est acceptable mais peut être optimisé."
	case meanMinutes30 > 0:
		return "Excellent temps de saisie ! L'équipe est très efficace."
	default:
		return "Pas assez de données pour évaluer l'efficacité de saisie."
	}
}
