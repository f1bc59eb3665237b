// Package validation checks user supplied input before it reaches the
// Proxmox API: the credentials from the configuration, node names taken
// from request paths, and the consistency of a built topology.
//
// It uses go-playground/validator for struct and field validation.
//
// # Usage Example
//
//	v := validation.New()
//	result := v.ValidateProxmox(cfg.Proxmox)
//	if !result.Valid {
//	    for _, err := range result.Errors {
//	        fmt.Printf("%s: %s\n", err.Field, err.Message)
//	    }
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"evalgo.org/pvegraph/internal/config"
	"evalgo.org/pvegraph/models"
)

// Validator validates configuration, request parameters and topologies.
type Validator struct {
	// structValidator validates Go struct constraints and tags
	structValidator *validator.Validate
}

// ValidationError represents a single validation error with field-level details.
type ValidationError struct {
	// Field is the name of the field that failed validation
	Field string `json:"field"`

	// Message describes why the validation failed
	Message string `json:"message"`

	// Value is the invalid value that caused the error (optional)
	Value interface{} `json:"value,omitempty"`
}

// ValidationResult represents the complete result of a validation operation.
type ValidationResult struct {
	// Valid is true if validation passed, false otherwise
	Valid bool `json:"valid"`

	// Errors contains all validation errors found (empty if Valid is true)
	Errors []ValidationError `json:"errors,omitempty"`
}

// New creates a new Validator. Field names in errors follow the yaml keys of
// the configuration.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Validator{structValidator: v}
}

// ValidateProxmox checks that cfg holds everything needed to create an API
// client. Secret values are never copied into the result.
func (v *Validator) ValidateProxmox(cfg config.ProxmoxConfig) *ValidationResult {
	err := v.structValidator.Struct(cfg)
	return v.result(err, "proxmox.", func(fe validator.FieldError) interface{} {
		if fe.Field() == "token_secret" {
			return nil
		}
		return fe.Value()
	})
}

// ValidateNodeName checks a node name taken from a request path.
func (v *Validator) ValidateNodeName(name string) *ValidationResult {
	err := v.structValidator.Var(name, "required,hostname_rfc1123")
	return v.result(err, "node", func(fe validator.FieldError) interface{} {
		return fe.Value()
	})
}

// ValidateTopology checks the structural invariants of a topology: unique
// node ids, edges between existing nodes and a summary matching the nodes.
func (v *Validator) ValidateTopology(topo *models.Topology) *ValidationResult {
	if topo == nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "topology", Message: "Topology is nil"}},
		}
	}

	var errs []ValidationError

	ids := make(map[string]bool, len(topo.Nodes))
	var physical, guests, networks, sdn int
	for i, n := range topo.Nodes {
		if n.ID == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("nodes[%d].id", i),
				Message: "Node id is required",
			})
			continue
		}
		if ids[n.ID] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("nodes[%d].id", i),
				Message: "Duplicate node id",
				Value:   n.ID,
			})
		}
		ids[n.ID] = true

		switch n.Type {
		case models.NodePhysical:
			physical++
		case models.NodeVM, models.NodeContainer:
			guests++
		case models.NodeBridge, models.NodeVLAN:
			networks++
		case models.NodeSDNVnet:
			sdn++
		default:
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("nodes[%d].type", i),
				Message: "Unknown node type",
				Value:   n.Type,
			})
		}
	}

	for i, e := range topo.Edges {
		if !ids[e.Source] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("edges[%d].source", i),
				Message: "Edge source does not reference a node",
				Value:   e.Source,
			})
		}
		if !ids[e.Target] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("edges[%d].target", i),
				Message: "Edge target does not reference a node",
				Value:   e.Target,
			})
		}
	}

	counts := []struct {
		field     string
		got, want int
	}{
		{"summary.total_nodes", topo.Summary.TotalNodes, physical},
		{"summary.total_vms", topo.Summary.TotalVMs, guests},
		{"summary.total_networks", topo.Summary.TotalNetworks, networks},
		{"summary.total_sdn", topo.Summary.TotalSDN, sdn},
	}
	for _, c := range counts {
		if c.got != c.want {
			errs = append(errs, ValidationError{
				Field:   c.field,
				Message: fmt.Sprintf("Summary reports %d, topology has %d", c.got, c.want),
				Value:   c.got,
			})
		}
	}

	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func (v *Validator) result(err error, prefix string, value func(validator.FieldError) interface{}) *ValidationResult {
	if err == nil {
		return &ValidationResult{Valid: true}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: strings.TrimSuffix(prefix, "."), Message: err.Error()}},
		}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := prefix
		if strings.HasSuffix(prefix, ".") {
			field += fe.Field()
		}
		out = append(out, ValidationError{
			Field:   field,
			Message: message(fe),
			Value:   value(fe),
		})
	}
	return &ValidationResult{Valid: false, Errors: out}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Value is required"
	case "url":
		return "Must be an absolute URL such as https://pve.example.com:8006"
	case "contains":
		return fmt.Sprintf("Must contain %q (user@realm!tokenname)", fe.Param())
	case "hostname_rfc1123":
		return "Must be a valid host name"
	default:
		return fmt.Sprintf("Failed %s validation", fe.Tag())
	}
}

// String joins the messages of an invalid result.
func (r *ValidationResult) String() string {
	if r == nil || r.Valid {
		return ""
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}
