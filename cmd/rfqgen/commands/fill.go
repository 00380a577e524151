package commands

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/ccirone2/docx-builder/pkg/exchange"
	"github.com/ccirone2/docx-builder/pkg/schema"
	"github.com/ccirone2/docx-builder/pkg/validate"
)

var (
	fillDataPath string
	fillOutPath  string
	fillCoreOnly bool
)

// fillCmd represents the fill command
var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill a schema interactively",
	Long: `Walk the schema's fields as interactive prompts, seeded with any
existing snapshot, and write the result as a YAML snapshot. Table fields are
skipped; edit those in the exported YAML directly.`,
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)
	fillCmd.Flags().StringVarP(&fillDataPath, "data", "d", "", "existing snapshot to seed answers from")
	fillCmd.Flags().StringVarP(&fillOutPath, "out", "o", "", "output path (default stdout)")
	fillCmd.Flags().BoolVar(&fillCoreOnly, "core-only", false, "prompt only for core groups")
}

func runFill(cmd *cobra.Command, _ []string) error {
	path, err := resolvedSchemaPath()
	if err != nil {
		return err
	}
	s, err := loadSchema(path)
	if err != nil {
		return err
	}
	seed, warnings, err := loadData(s, fillDataPath)
	if err != nil {
		return err
	}
	printWarnings(cmd.ErrOrStderr(), warnings)

	data, err := fillData(s, seed, surveyAsker{}, fillCoreOnly)
	if err != nil {
		return err
	}

	result := validate.Validate(s, data)
	for _, msg := range result.Errors {
		fmt.Fprintln(cmd.ErrOrStderr(), "Still missing:", msg)
	}

	snapshot, err := exchange.Export(s, data, false)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), fillOutPath, snapshot)
}

// asker abstracts the interactive prompt layer so fill logic can be tested
// without a terminal.
type asker interface {
	Input(msg, def, help string, validator func(string) error) (string, error)
	Multiline(msg, def string) (string, error)
	Confirm(msg string, def bool) (bool, error)
	Select(msg string, options []string, def string) (string, error)
}

// fillData walks the schema's groups in order and prompts for each field.
// Existing values become defaults; blank answers leave a field unset.
func fillData(s *schema.Schema, seed schema.Data, ask asker, coreOnly bool) (schema.Data, error) {
	data := schema.Data{}
	for k, v := range seed {
		data[k] = v
	}

	groups := s.CoreGroups
	if !coreOnly {
		groups = s.AllGroups()
	}

	for _, g := range groups {
		for _, f := range g.Fields {
			if f.ConditionalOn != nil && !conditionHolds(data, f.ConditionalOn) {
				continue
			}
			if f.IsTable() {
				continue
			}

			if f.IsCompound() {
				values, _ := data[f.Key].(map[string]any)
				filled, err := fillCompound(f, values, ask)
				if err != nil {
					return nil, err
				}
				if len(filled) > 0 {
					data[f.Key] = filled
				}
				continue
			}

			value, err := askField(f, data[f.Key], ask)
			if err != nil {
				return nil, err
			}
			if value != nil {
				data[f.Key] = value
			}
		}
	}
	return data, nil
}

func fillCompound(f schema.FieldDef, existing map[string]any, ask asker) (map[string]any, error) {
	out := make(map[string]any, len(f.SubFields))
	for _, sf := range f.SubFields {
		label := f.Label + " / " + sf.Label
		prompted := sf
		prompted.Label = label
		value, err := askField(prompted, existing[sf.Key], ask)
		if err != nil {
			return nil, err
		}
		if value != nil {
			out[sf.Key] = value
		}
	}
	return out, nil
}

func askField(f schema.FieldDef, existing any, ask asker) (any, error) {
	message := f.Label
	if f.Required {
		message += " (required)"
	}

	switch f.Type {
	case schema.TypeBoolean:
		def, _ := existing.(bool)
		return ask.Confirm(message, def)

	case schema.TypeChoice:
		def, _ := existing.(string)
		return ask.Select(message, f.Choices, def)

	case schema.TypeMultiline:
		def, _ := existing.(string)
		answer, err := ask.Multiline(message, def)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(answer) == "" {
			return nil, nil
		}
		return answer, nil

	case schema.TypeNumber, schema.TypeCurrency:
		answer, err := ask.Input(message, formatDefault(existing), f.Placeholder, validNumber)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(answer) == "" {
			return nil, nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		if err != nil {
			return answer, nil
		}
		return n, nil

	case schema.TypeDate:
		answer, err := ask.Input(message, formatDefault(existing), "YYYY-MM-DD", validDate)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(answer) == "" {
			return nil, nil
		}
		return answer, nil

	default:
		answer, err := ask.Input(message, formatDefault(existing), f.Placeholder, patternValidator(f))
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(answer) == "" {
			return nil, nil
		}
		return answer, nil
	}
}

func conditionHolds(data schema.Data, cond *schema.Condition) bool {
	return fmt.Sprintf("%v", data[cond.Field]) == fmt.Sprintf("%v", cond.Value)
}

func formatDefault(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func validNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return errors.New("enter a number")
	}
	return nil
}

var dateAnswer = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func validDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if !dateAnswer.MatchString(strings.TrimSpace(s)) {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func patternValidator(f schema.FieldDef) func(string) error {
	if f.Validation == nil || f.Validation.Pattern == "" {
		return nil
	}
	re, err := regexp.Compile("^(?:" + f.Validation.Pattern + ")")
	if err != nil {
		return nil
	}
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		if !re.MatchString(s) {
			return errors.New("value doesn't match the expected format")
		}
		return nil
	}
}

// surveyAsker implements asker on top of survey prompts.
type surveyAsker struct{}

func (surveyAsker) Input(msg, def, help string, validator func(string) error) (string, error) {
	var out string
	prompt := &survey.Input{Message: msg, Default: def, Help: help}
	var opts []survey.AskOpt
	if validator != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return validator(s)
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyAsker) Multiline(msg, def string) (string, error) {
	var out string
	if err := survey.AskOne(&survey.Multiline{Message: msg, Default: def}, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyAsker) Confirm(msg string, def bool) (bool, error) {
	var out bool
	if err := survey.AskOne(&survey.Confirm{Message: msg, Default: def}, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (surveyAsker) Select(msg string, options []string, def string) (string, error) {
	var out string
	prompt := &survey.Select{Message: msg, Options: options}
	if def != "" {
		prompt.Default = def
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errors.New("fill cancelled")
	}
	return err
}
