package extraction

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Strategy
	}{
		{path: "/usr/share/doc/readme", want: StrategyNone},
		{path: "/home/user/Desktop/site.url", want: StrategyPlaceholder},
		{path: "/home/user/Desktop/Site.URL", want: StrategyPlaceholder},
		{path: "/opt/app/tool.exe", want: StrategyApp},
		{path: "/opt/app/Tool.EXE", want: StrategyApp},
		{path: "/start/menu/app.lnk", want: StrategyShortcut},
		{path: "/docs/report.pdf", want: StrategyFile},
		{path: "/docs/archive.tar.gz", want: StrategyFile},
		{path: "relative.txt", want: StrategyFile},
	}

	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestStrategyString(t *testing.T) {
	tests := []struct {
		strategy Strategy
		want     string
	}{
		{StrategyNone, "none"},
		{StrategyPlaceholder, "placeholder"},
		{StrategyFile, "file"},
		{StrategyApp, "app"},
		{StrategyShortcut, "shortcut"},
		{Strategy(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.strategy.String(); got != tt.want {
			t.Errorf("Strategy(%d).String() = %q, want %q", tt.strategy, got, tt.want)
		}
	}
}
