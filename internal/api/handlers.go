package api

import (
	"errors"

	"github.com/sirupsen/logrus"
)

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Accounts == nil || deps.Diary == nil || deps.Summaries == nil || deps.Prescriptions == nil {
		return nil, errors.New("all services are required")
	}
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	return &Handler{
		accounts:      deps.Accounts,
		diary:         deps.Diary,
		summaries:     deps.Summaries,
		prescriptions: deps.Prescriptions,
		log:           deps.Log,
	}, nil
}
