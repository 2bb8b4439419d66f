package cmd

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/Raamakrishnan/ulog/internal/errors"
	"github.com/Raamakrishnan/ulog/internal/filter"
	"github.com/Raamakrishnan/ulog/internal/ingest"
	"github.com/Raamakrishnan/ulog/internal/model"
	"github.com/Raamakrishnan/ulog/internal/output"
	"github.com/Raamakrishnan/ulog/internal/parser"
)

// Configuration keys, shared by flags, the config file and ULOG_* variables.
const (
	keyID        = "id"
	keySeverity  = "severity"
	keyComponent = "component"
	keyOutput    = "output"
	keyAliases   = "aliases"
	keyOnError   = "on-error"
	keyNoFilter  = "no-filter"
	keyLogLevel  = "log-level"
)

// options is the resolved configuration of one invocation.
type options struct {
	filter *filter.Filter
	format output.Format
	parser *parser.Parser
	policy ingest.Policy
}

func loadOptions(v *viper.Viper) (*options, error) {
	f, err := buildFilter(
		v.GetStringSlice(keyID),
		v.GetStringSlice(keySeverity),
		v.GetStringSlice(keyComponent),
		v.GetString(keyNoFilter),
	)
	if err != nil {
		return nil, err
	}

	format, err := output.ParseFormat(v.GetString(keyOutput))
	if err != nil {
		return nil, err
	}

	policy, err := ingest.ParsePolicy(v.GetString(keyOnError))
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	return &options{
		filter: f,
		format: format,
		parser: parser.New(parser.Options{Aliases: v.GetBool(keyAliases)}),
		policy: policy,
	}, nil
}

// buildFilter turns the filter flags into a Filter. Severity flags always
// accept the lowercase aliases. Without any flag the no-filter setting picks
// between the full severity set ("all") and no criterion at all ("none").
func buildFilter(ids, severities, components []string, noFilter string) (*filter.Filter, error) {
	var opts []filter.Option

	if len(ids) > 0 {
		opts = append(opts, filter.WithIDs(ids...))
	}
	if len(severities) > 0 {
		sevs := make([]model.Severity, 0, len(severities))
		for _, s := range severities {
			sev, err := model.ParseSeverity(strings.TrimSpace(s), true)
			if err != nil {
				return nil, errors.WithStackTrace(err)
			}
			sevs = append(sevs, sev)
		}
		opts = append(opts, filter.WithSeverities(sevs...))
	}
	if len(components) > 0 {
		opts = append(opts, filter.WithComponents(components...))
	}

	if len(opts) == 0 {
		switch strings.ToLower(noFilter) {
		case "", "all":
			opts = append(opts, filter.AllSeverities())
		case "none":
		default:
			return nil, errors.Errorf("unknown no-filter value %q (want all or none)", noFilter)
		}
	}

	return filter.New(opts...)
}
