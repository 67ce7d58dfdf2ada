package template

import (
	"fmt"
	"strings"
)

// Kind distinguishes verbatim files from parameterized templates.
type Kind int

const (
	// Static files are written byte-for-byte from the embedded filesystem.
	Static Kind = iota
	// Parameterized files are rendered with a Context before writing.
	Parameterized
)

// Stage groups files by the pipeline step that emits them.
type Stage int

const (
	// StageCore is the main template emission step (providers, theme,
	// router, entrypoint, test).
	StageCore Stage = iota
	// StageBackend is the backend step that follows the dio dependency
	// patch (API client).
	StageBackend
)

// File is one entry in the emission plan.
type File struct {
	// Source is the path in the embedded filesystem. A .tmpl suffix marks
	// the file as parameterized.
	Source string

	// OutputPath is the destination, relative to the project root.
	OutputPath string

	// Stage selects which pipeline step emits this file.
	Stage Stage

	// References lists the OutputPaths of files whose exported symbols
	// this file's source text imports. Referenced files are emitted first.
	References []string
}

// Kind reports whether the file is rendered or copied verbatim.
func (f File) Kind() Kind {
	if strings.HasSuffix(f.Source, ".tmpl") {
		return Parameterized
	}
	return Static
}

// ProjectFiles is the complete emission plan for a generated project. The
// reference edges mirror the import statements inside the template text;
// EmissionOrder derives the write order from them, so adding or reordering
// entries here cannot silently break cross-file references.
var ProjectFiles = []File{
	{
		Source:     "lib/core/providers/theme_provider.dart",
		OutputPath: "lib/core/providers/theme_provider.dart",
		Stage:      StageCore,
	},
	{
		Source:     "lib/core/providers/auth_provider.dart",
		OutputPath: "lib/core/providers/auth_provider.dart",
		Stage:      StageCore,
	},
	{
		Source:     "lib/core/providers/app_providers.dart.tmpl",
		OutputPath: "lib/core/providers/app_providers.dart",
		Stage:      StageCore,
		References: []string{"lib/core/providers/theme_provider.dart"},
	},
	{
		Source:     "lib/theme/app_theme.dart",
		OutputPath: "lib/theme/app_theme.dart",
		Stage:      StageCore,
	},
	{
		Source:     "lib/router/router.dart.tmpl",
		OutputPath: "lib/router/router.dart",
		Stage:      StageCore,
		References: []string{"lib/core/providers/app_providers.dart"},
	},
	{
		Source:     "lib/main.dart.tmpl",
		OutputPath: "lib/main.dart",
		Stage:      StageCore,
		References: []string{
			"lib/theme/app_theme.dart",
			"lib/core/providers/app_providers.dart",
			"lib/router/router.dart",
		},
	},
	{
		Source:     "test/widget_test.dart.tmpl",
		OutputPath: "test/widget_test.dart",
		Stage:      StageCore,
		References: []string{"lib/main.dart"},
	},
	{
		Source:     "lib/core/backend/api_client.dart",
		OutputPath: "lib/core/backend/api_client.dart",
		Stage:      StageBackend,
	},
}

// EmissionOrder returns the plan entries for the given stage, topologically
// sorted so every file is emitted after the files it references. Reference
// edges may point at entries in any stage; only the requested stage is
// returned. The sort is stable with respect to the plan's declaration
// order, so output is deterministic.
func EmissionOrder(files []File, stage Stage) ([]File, error) {
	byPath := make(map[string]int, len(files))
	for i, f := range files {
		byPath[f.OutputPath] = i
	}

	// Validate edges up front so a typo in References fails loudly.
	for _, f := range files {
		for _, ref := range f.References {
			if _, ok := byPath[ref]; !ok {
				return nil, fmt.Errorf("%w: %s references %s", ErrUnknownReference, f.OutputPath, ref)
			}
		}
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make([]int, len(files))
	order := make([]File, 0, len(files))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: involving %s", ErrReferenceCycle, files[i].OutputPath)
		}
		state[i] = visiting
		for _, ref := range files[i].References {
			if err := visit(byPath[ref]); err != nil {
				return err
			}
		}
		state[i] = done
		order = append(order, files[i])
		return nil
	}

	for i := range files {
		if err := visit(i); err != nil {
			return nil, err
		}
	}

	staged := make([]File, 0, len(order))
	for _, f := range order {
		if f.Stage == stage {
			staged = append(staged, f)
		}
	}
	return staged, nil
}
