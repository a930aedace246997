package builtins

import (
	"path/filepath"
	"strings"

	"github.com/avonlang/avon/internal/filecache"
	"github.com/avonlang/avon/internal/value"
)

// registerIO installs the file-reading builtins. They are the only
// builtins that touch the filesystem, and they never write; writing is
// the deploy collector's job.
func registerIO(reg registerFn, cache *filecache.Cache) {
	reg("readfile", 1, 1, func(args []value.Value) (value.Value, error) {
		path, ok := pathArg(args[0])
		if !ok {
			return nil, typeError("readfile", "path or string", args[0])
		}
		b, err := cache.Read(path)
		if err != nil {
			return nil, err
		}
		return value.Str(string(b)), nil
	})

	reg("readlines", 1, 1, func(args []value.Value) (value.Value, error) {
		path, ok := pathArg(args[0])
		if !ok {
			return nil, typeError("readlines", "path or string", args[0])
		}
		b, err := cache.Read(path)
		if err != nil {
			return nil, err
		}
		text := strings.TrimSuffix(string(b), "\n")
		var lines []string
		if text != "" {
			lines = strings.Split(text, "\n")
		}
		elems := make([]value.Value, len(lines))
		for i, l := range lines {
			elems[i] = value.Str(l)
		}
		return &value.List{Elems: elems}, nil
	})

	reg("exists", 1, 1, func(args []value.Value) (value.Value, error) {
		path, ok := pathArg(args[0])
		if !ok {
			return nil, typeError("exists", "path or string", args[0])
		}
		return value.Bool(cache.Exists(path)), nil
	})

	reg("path", 1, 1, func(args []value.Value) (value.Value, error) {
		s, ok := pathArg(args[0])
		if !ok {
			return nil, typeError("path", "path or string", args[0])
		}
		return value.Path(s), nil
	})

	reg("basename", 1, 1, func(args []value.Value) (value.Value, error) {
		path, ok := pathArg(args[0])
		if !ok {
			return nil, typeError("basename", "path or string", args[0])
		}
		return value.Str(filepath.Base(path)), nil
	})
}

func pathArg(v value.Value) (string, bool) {
	switch x := v.(type) {
	case value.Path:
		return string(x), true
	case value.Str:
		return string(x), true
	}
	return "", false
}
