package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclFile is the top-level structure of an HCL manifest.
type hclFile struct {
	Steps []*hclStep `hcl:"step,block"`
}

// hclStep keeps inputs and outputs as raw expressions so their types can be
// checked with precise diagnostics.
type hclStep struct {
	Name    string         `hcl:"name,label"`
	Command *string        `hcl:"command,optional"`
	Inputs  hcl.Expression `hcl:"inputs,optional"`
	Outputs hcl.Expression `hcl:"outputs"`

	DefRange hcl.Range `hcl:",def_range"`
}

// ParseHCL decodes an HCL manifest. filename is used in diagnostics only.
func ParseHCL(src []byte, filename string) ([]Step, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	steps := make([]Step, 0, len(parsed.Steps))
	for _, hs := range parsed.Steps {
		step, stepDiags := newStepFromHCL(hs)
		if stepDiags.HasErrors() {
			return nil, fmt.Errorf("error parsing step %q in file %s: %w", hs.Name, filename, stepDiags)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func newStepFromHCL(hs *hclStep) (Step, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	inputs, inDiags := parseFileList(hs.Inputs, "inputs", false)
	diags = append(diags, inDiags...)
	outputs, outDiags := parseFileList(hs.Outputs, "outputs", true)
	diags = append(diags, outDiags...)

	command := hs.Name
	if hs.Command != nil {
		command = *hs.Command
	}

	return Step{
		Name:    hs.Name,
		Command: command,
		Inputs:  inputs,
		Outputs: outputs,
		Source:  fmt.Sprintf("%s:%d", hs.DefRange.Filename, hs.DefRange.Start.Line),
	}, diags
}

// parseFileList evaluates expr as a static list of non-empty strings. A null
// value (attribute omitted) is accepted unless required is set.
func parseFileList(expr hcl.Expression, attr string, required bool) ([]string, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	if expr == nil {
		if required {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing " + attr,
				Detail:   fmt.Sprintf("The '%s' attribute is required.", attr),
			})
		}
		return nil, diags
	}

	subject := expr.Range().Ptr()
	if len(expr.Variables()) > 0 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid " + attr + " value",
			Detail:   fmt.Sprintf("The '%s' attribute must not reference variables.", attr),
			Subject:  subject,
		})
		return nil, diags
	}

	val, valDiags := expr.Value(nil)
	diags = append(diags, valDiags...)
	if valDiags.HasErrors() {
		return nil, diags
	}

	if val.IsNull() {
		if required {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid " + attr + " value",
				Detail:   fmt.Sprintf("The '%s' attribute must not be null.", attr),
				Subject:  subject,
			})
		}
		return nil, diags
	}

	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid " + attr + " value",
			Detail:   fmt.Sprintf("The '%s' attribute must be a list of file names.", attr),
			Subject:  subject,
		})
		return nil, diags
	}

	files := make([]string, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.IsNull() || v.Type() != cty.String || v.AsString() == "" {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid " + attr + " value",
				Detail:   fmt.Sprintf("Every element of '%s' must be a non-empty string.", attr),
				Subject:  subject,
			})
			return nil, diags
		}
		files = append(files, v.AsString())
	}
	return files, diags
}
