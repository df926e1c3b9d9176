package service

import "errors"

// 可预期的业务错误，由处理器映射为对应的HTTP状态和法语提示
var (
	ErrInvalidCredentials = errors.New("nom d'utilisateur ou mot de passe incorrect")
	ErrDuplicateName      = errors.New("ce nom existe déjà")
	ErrNameRequired       = errors.New("le nom est obligatoire")
	ErrEmptyAnalysis      = errors.New("l'analyse est obligatoire")
	ErrInvalidDateRange   = errors.New("la date de début doit être antérieure ou égale à la date de fin")
	ErrPasswordMismatch   = errors.New("les mots de passe ne correspondent pas")
	ErrPasswordTooShort   = errors.New("le mot de passe doit contenir au moins 6 caractères")
	ErrPasswordRequired   = errors.New("le mot de passe est obligatoire")
	ErrInvalidRole        = errors.New("rôle invalide")
	ErrForbidden          = errors.New("action non autorisée")
	ErrNotFound           = errors.New("élément introuvable")
	ErrUserHasDossiers    = errors.New("cet utilisateur possède des dossiers et ne peut pas être supprimé")
	ErrInvalidGoal        = errors.New("l'objectif quotidien doit être compris entre 1 et 100")
	ErrInvalidFilter      = errors.New("critères de recherche invalides")
)
