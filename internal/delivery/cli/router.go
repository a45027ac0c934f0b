package cli

import (
	"patient-records/internal/delivery/cli/handler"

	"github.com/spf13/cobra"
)

type Router struct {
	patientHandler *handler.PatientHandler
}

func NewRouter(patientHandler *handler.PatientHandler) *Router {
	return &Router{
		patientHandler: patientHandler,
	}
}

func (r *Router) Setup() *cobra.Command {
	root := &cobra.Command{
		Use:           "patients",
		Short:         "Create, list and count patient records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		r.patientHandler.CreateCommand(),
		r.patientHandler.ShowCommand(),
		r.patientHandler.CountCommand(),
	)

	return root
}
