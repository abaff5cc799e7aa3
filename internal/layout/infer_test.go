package layout

import (
	"reflect"
	"testing"
)

func TestInferEmpty(t *testing.T) {
	inf := Infer("demo", Listing{})
	if inf.Lib != nil || len(inf.Bins) != 0 || len(inf.Examples) != 0 {
		t.Fatalf("empty listing inferred targets: %+v", inf)
	}
}

func TestInferMainAndLib(t *testing.T) {
	inf := Infer("demo", Listing{HasSrcMain: true, HasSrcLib: true})
	if inf.Lib == nil || inf.Lib.Name != "demo" || inf.Lib.Path != "src/lib.rs" {
		t.Fatalf("lib = %+v", inf.Lib)
	}
	want := []Target{{Name: "demo", Path: "src/main.rs"}}
	if !reflect.DeepEqual(inf.Bins, want) {
		t.Fatalf("bins = %+v, want %+v", inf.Bins, want)
	}
}

func TestInferDir(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []Target
	}{
		{
			name:  "single files",
			files: []string{"src/bin/tool.rs", "src/bin/helper.rs"},
			want: []Target{
				{Name: "helper", Path: "src/bin/helper.rs"},
				{Name: "tool", Path: "src/bin/tool.rs"},
			},
		},
		{
			name:  "directory binary is one target",
			files: []string{"src/bin/multi/main.rs", "src/bin/multi/util.rs", "src/bin/multi/sub/extra.rs"},
			want:  []Target{{Name: "multi", Path: "src/bin/multi/main.rs"}},
		},
		{
			name:  "directory without main.rs is no target",
			files: []string{"src/bin/lonely/util.rs"},
			want:  nil,
		},
		{
			name:  "file and directory mixed",
			files: []string{"src/bin/z.rs", "src/bin/a/main.rs"},
			want: []Target{
				{Name: "a", Path: "src/bin/a/main.rs"},
				{Name: "z", Path: "src/bin/z.rs"},
			},
		},
		{
			name:  "non-source children ignored",
			files: []string{"src/bin/readme.txt", "src/bin/.rs"},
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inferDir("src/bin", tt.files)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("inferDir = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInferExamplesTestsBenches(t *testing.T) {
	inf := Infer("demo", Listing{
		Examples: []string{"examples/simple.rs", "examples/full/main.rs"},
		Tests:    []string{"tests/integration.rs"},
		Benches:  []string{"benches/speed.rs"},
	})
	if want := []Target{
		{Name: "full", Path: "examples/full/main.rs"},
		{Name: "simple", Path: "examples/simple.rs"},
	}; !reflect.DeepEqual(inf.Examples, want) {
		t.Fatalf("examples = %+v, want %+v", inf.Examples, want)
	}
	if len(inf.Tests) != 1 || inf.Tests[0].Name != "integration" {
		t.Fatalf("tests = %+v", inf.Tests)
	}
	if len(inf.Benches) != 1 || inf.Benches[0].Name != "speed" {
		t.Fatalf("benches = %+v", inf.Benches)
	}
}

func TestByKind(t *testing.T) {
	inf := Inferred{Bins: []Target{{Name: "a"}}}
	if got := inf.ByKind("bin"); len(got) != 1 {
		t.Fatalf("ByKind(bin) = %+v", got)
	}
	if got := inf.ByKind("lib"); got != nil {
		t.Fatalf("ByKind(lib) = %+v, want nil", got)
	}
}
