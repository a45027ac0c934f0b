package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"patient-records/internal/converter"
	"patient-records/internal/delivery/dto"
	"patient-records/internal/usecase"
	"patient-records/pkg/validator"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var ErrInvalidLimit = errors.New("limit must be a non-negative integer")

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// CreateCommand builds `create <first_name> <last_name> --birth-date D
// --phone P --document-type T --document-number N`. Repeated document flags
// are joined with a space.
func (h *PatientHandler) CreateCommand() *cobra.Command {
	var (
		birthDate      string
		phone          string
		documentType   []string
		documentNumber []string
	)

	cmd := &cobra.Command{
		Use:   "create <first_name> <last_name>",
		Short: "Create and store a patient",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CreatePatientRequest{
				FirstName:      args[0],
				LastName:       args[1],
				BirthDate:      birthDate,
				Phone:          phone,
				DocumentType:   strings.Join(documentType, " "),
				DocumentNumber: strings.Join(documentNumber, " "),
			}
			if err := h.validator.Validate(&req); err != nil {
				return errors.New(h.validator.Describe(err))
			}

			if _, err := h.patientUsecase.Create(cmd.Context(), &req); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Patient added")
			return nil
		},
	}

	cmd.Flags().StringVarP(&birthDate, "birth-date", "b", "", "birth date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&phone, "phone", "p", "", "phone number with 11 digits")
	cmd.Flags().StringArrayVarP(&documentType, "document-type", "t", nil, "document type")
	cmd.Flags().StringArrayVarP(&documentNumber, "document-number", "n", nil, "document number")
	return cmd
}

// ShowCommand builds `show [limit]`.
func (h *PatientHandler) ShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [limit]",
		Short: "Print stored patients",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.ShowPatientsRequest{Limit: usecase.DefaultShowLimit, JSON: asJSON}
			if len(args) == 1 {
				limit, err := strconv.Atoi(args[0])
				if err != nil {
					return ErrInvalidLimit
				}
				req.Limit = limit
			}
			if err := h.validator.Validate(&req); err != nil {
				return ErrInvalidLimit
			}

			out := cmd.OutOrStdout()
			encoder := json.NewEncoder(out)
			for patient, err := range h.patientUsecase.Show(cmd.Context(), req.Limit) {
				if err != nil {
					return err
				}
				if req.JSON {
					if err := encoder.Encode(converter.PatientToResponse(patient)); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintln(out, patient.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per patient")
	// "-1" reaches pflag as a shorthand group before RunE sees it
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		var notExist *pflag.NotExistError
		if errors.As(err, &notExist) {
			if _, convErr := strconv.Atoi(notExist.GetSpecifiedShortnames()); convErr == nil {
				return ErrInvalidLimit
			}
		}
		return err
	})
	return cmd
}

// CountCommand builds `count`.
func (h *PatientHandler) CountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored patients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := h.patientUsecase.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}
}
