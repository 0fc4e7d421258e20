package report

import "errors"

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrReportForbidden = errors.New("only the owner can change this report")
	ErrReportNameTaken = errors.New("you already have a report with this name")
)
