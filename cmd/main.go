package main

import (
	"go-appointment-scheduling/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.WithError(err).Fatal("Appointment service failed to start")
	}

	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Appointment service stopped")
	}
}
