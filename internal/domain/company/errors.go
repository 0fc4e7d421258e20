package company

import "errors"

var (
	ErrCompanyNotFound   = errors.New("company not found")
	ErrCNPJExists        = errors.New("company with this CNPJ already exists")
	ErrCompanyInUse      = errors.New("company is referenced by managers or employees")
	ErrInvalidCity       = errors.New("referenced city does not exist")
	ErrManagerNotFound   = errors.New("manager not found")
	ErrManagerExists     = errors.New("user is already a manager")
	ErrManagerInUse      = errors.New("manager is referenced by service provisions")
	ErrInvalidManagerRef = errors.New("referenced user or company does not exist")
)
