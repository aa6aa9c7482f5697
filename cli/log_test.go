package cli

import "testing"

func TestLogConfigScan(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "assigned values",
			args: []string{"--log-level=debug", "--log-format=json"},
			want: logConfig{Level: "debug", Format: "json"},
		},
		{
			name: "separate values",
			args: []string{"--log-level", "trace", "render"},
			want: logConfig{Level: "trace"},
		},
		{
			name: "bare boolean",
			args: []string{"--log-pretty", "--log-caller"},
			want: logConfig{Pretty: true, Caller: true},
		},
		{
			name: "negated boolean",
			args: []string{"--log-pretty", "--no-log-pretty"},
			want: logConfig{Pretty: false},
		},
		{
			name: "explicit boolean value",
			args: []string{"--log-caller=true", "--no-log-pretty=false"},
			want: logConfig{Caller: true, Pretty: true},
		},
		{
			name: "flags after subcommand",
			args: []string{"render", "--log-level=error"},
			want: logConfig{Level: "error"},
		},
		{
			name: "unrelated flags ignored",
			args: []string{"--config", "x.yaml", "-e", "description"},
			want: logConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg logConfig

			cfg.scan(tt.args)

			if cfg != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, cfg)
			}
		})
	}
}

func TestScanBool(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		value    string
		assigned bool
		want     bool
	}{
		{name: "bare positive", flag: "--log-pretty", want: true},
		{name: "bare negative", flag: "--no-log-pretty", want: false},
		{name: "assigned true", flag: "--log-pretty", value: "true", assigned: true, want: true},
		{name: "assigned false", flag: "--log-pretty", value: "false", assigned: true, want: false},
		{name: "negated assigned true", flag: "--no-log-pretty", value: "true", assigned: true, want: false},
		{name: "unparsable value", flag: "--log-pretty", value: "maybe", assigned: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scanBool(tt.flag, tt.value, tt.assigned); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
