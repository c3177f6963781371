package api

import (
	"github.com/shamaiem10/Vytal/internal/services"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	accounts      *services.AccountService
	diary         *services.DiaryService
	summaries     *services.SummaryService
	prescriptions *services.PrescriptionService
	log           *logrus.Logger
}

type Dependencies struct {
	Accounts      *services.AccountService
	Diary         *services.DiaryService
	Summaries     *services.SummaryService
	Prescriptions *services.PrescriptionService
	Log           *logrus.Logger
}
