package alias

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	assert.True(t, NewRegistry(nil).CaseSensitive())
	assert.True(t, NewRegistry(&Options{}).CaseSensitive())
	assert.False(t, NewRegistry(&Options{IgnoreCase: true}).CaseSensitive())
	assert.Equal(t, 0, NewRegistry(nil).Len())
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	sensitive := NewRegistry(nil)
	assert.Equal(t, "List", sensitive.Normalize("List"))
	assert.Equal(t, "list", sensitive.Normalize("list"))

	insensitive := NewRegistry(&Options{IgnoreCase: true})
	assert.Equal(t, "list", insensitive.Normalize("List"))
	assert.Equal(t, "list", insensitive.Normalize("LIST"))
	assert.Equal(t, "liés", insensitive.Normalize("LIÉS"))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("single alias", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.Register("list", "ls"))

		assert.Equal(t, []string{"ls"}, r.Aliases("list"))
		command, ok := r.Resolve("ls")
		require.True(t, ok)
		assert.Equal(t, "list", command)
	})
	t.Run("multiple aliases keep insertion order", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.Register("list", "ls"))
		require.NoError(t, r.Register("list", "l"))
		require.NoError(t, r.Register("list", "dir"))

		assert.Equal(t, []string{"ls", "l", "dir"}, r.Aliases("list"))
		assert.Equal(t, 3, r.Len())
	})
	t.Run("duplicate alias for another command", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.Register("list", "ls"))

		err := r.Register("delete", "ls")
		require.Error(t, err)
		require.ErrorIs(t, err, ErrAliasExists)
		assert.ErrorContains(t, err, `alias "ls" is already registered for command "list"`)
		assert.Empty(t, r.Aliases("delete"))
		command, _ := r.Resolve("ls")
		assert.Equal(t, "list", command)
	})
	t.Run("duplicate alias for the same command", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.Register("list", "ls"))

		err := r.Register("list", "ls")
		require.ErrorIs(t, err, ErrAliasExists)
		assert.Equal(t, []string{"ls"}, r.Aliases("list"))
		assert.Equal(t, 1, r.Len())
	})
	t.Run("alias same as command name", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)

		err := r.Register("list", "list")
		require.ErrorIs(t, err, ErrSelfAlias)
		assert.ErrorContains(t, err, `alias "list" cannot be the same as command name "list"`)
		assert.Equal(t, 0, r.Len())
		assert.Empty(t, r.Map())
	})
	t.Run("alias same as command name ignoring case", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(&Options{IgnoreCase: true})

		err := r.Register("list", "LIST")
		require.ErrorIs(t, err, ErrSelfAlias)

		// Case-sensitive registries treat a different casing as a different token.
		require.NoError(t, NewRegistry(nil).Register("list", "LIST"))
	})
	t.Run("case-insensitive conflict", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(&Options{IgnoreCase: true})
		require.NoError(t, r.Register("list", "ls"))

		err := r.Register("delete", "LS")
		require.ErrorIs(t, err, ErrAliasExists)
	})
	t.Run("case-sensitive allows different case", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.Register("list", "ls"))
		require.NoError(t, r.Register("delete", "LS"))

		command, _ := r.Resolve("ls")
		assert.Equal(t, "list", command)
		command, _ = r.Resolve("LS")
		assert.Equal(t, "delete", command)
	})
	t.Run("display list keeps original casing", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(&Options{IgnoreCase: true})
		require.NoError(t, r.Register("list", "LS"))

		assert.Equal(t, []string{"LS"}, r.Aliases("list"))
		command, ok := r.Resolve("ls")
		require.True(t, ok)
		assert.Equal(t, "list", command)
	})
	t.Run("error details", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)

		err := r.Register("list", "l s")
		var aliasErr *Error
		require.True(t, errors.As(err, &aliasErr))
		assert.Equal(t, "l s", aliasErr.Alias)
		assert.Equal(t, "list", aliasErr.Command)
		assert.Equal(t, ErrInvalidAlias, aliasErr.Kind)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		alias   string
		wantErr string
	}{
		{name: "empty", alias: "", wantErr: "alias must be a non-empty string"},
		{name: "space", alias: "l s", wantErr: "cannot contain whitespace"},
		{name: "tab", alias: "l\ts", wantErr: "cannot contain whitespace"},
		{name: "newline", alias: "ls\n", wantErr: "cannot contain whitespace"},
		{name: "at sign", alias: "l@s", wantErr: "must only contain alphanumeric characters, dashes, and underscores"},
		{name: "dollar", alias: "l$s", wantErr: "must only contain alphanumeric characters, dashes, and underscores"},
		{name: "dot", alias: "l.s", wantErr: "must only contain alphanumeric characters, dashes, and underscores"},
		{name: "dashes", alias: "list-all"},
		{name: "underscores", alias: "list_all"},
		{name: "digits", alias: "ls2"},
		{name: "unicode letters", alias: "liés"},
		{name: "combining mark", alias: "liés"},
		{name: "cjk", alias: "一覧"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.alias)
			if tt.wantErr == "" {
				require.NoError(t, err)
				require.NoError(t, NewRegistry(nil).Register("list", tt.alias))
				return
			}
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)

			regErr := NewRegistry(nil).Register("list", tt.alias)
			require.ErrorIs(t, regErr, ErrInvalidAlias)
			assert.ErrorContains(t, regErr, tt.wantErr)
		})
	}
}

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	t.Run("nil and empty are no-ops", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.RegisterAll("list", nil))
		require.NoError(t, r.RegisterAll("list", []string{}))

		_, ok := r.Map()["list"]
		assert.False(t, ok)
		assert.Equal(t, 0, r.Len())
	})
	t.Run("registers in order", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.RegisterAll("list", []string{"ls", "l", "dir"}))

		assert.Equal(t, []string{"ls", "l", "dir"}, r.Aliases("list"))
		for _, a := range []string{"ls", "l", "dir"} {
			command, ok := r.Resolve(a)
			require.True(t, ok)
			assert.Equal(t, "list", command)
		}
	})
	t.Run("failure rolls back the batch", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.RegisterAll("delete", []string{"rm"}))

		err := r.RegisterAll("list", []string{"ls", "l", "rm", "dir"})
		require.ErrorIs(t, err, ErrAliasExists)

		assert.Equal(t, map[string][]string{"delete": {"rm"}}, r.Map())
		for _, a := range []string{"ls", "l", "dir"} {
			_, ok := r.Resolve(a)
			assert.False(t, ok, "alias %q should have been rolled back", a)
		}
	})
	t.Run("failure keeps aliases from earlier calls", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.RegisterAll("list", []string{"ls"}))

		err := r.RegisterAll("list", []string{"l", "bad alias"})
		require.ErrorIs(t, err, ErrInvalidAlias)

		assert.Equal(t, []string{"ls"}, r.Aliases("list"))
		_, ok := r.Resolve("l")
		assert.False(t, ok)
		assert.Equal(t, 1, r.Len())
	})
	t.Run("duplicate within batch", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(&Options{IgnoreCase: true})

		err := r.RegisterAll("list", []string{"ls", "LS"})
		require.ErrorIs(t, err, ErrAliasExists)
		assert.Equal(t, 0, r.Len())
		assert.Empty(t, r.Map())
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		command, ok := NewRegistry(nil).Resolve("nonexistent")
		assert.False(t, ok)
		assert.Empty(t, command)
	})
	t.Run("primary name does not resolve", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.Register("list", "ls"))

		_, ok := r.Resolve("list")
		assert.False(t, ok)
	})
	t.Run("case-insensitive", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(&Options{IgnoreCase: true})
		require.NoError(t, r.Register("list", "ls"))

		for _, token := range []string{"ls", "LS", "Ls", "lS"} {
			command, ok := r.Resolve(token)
			require.True(t, ok, token)
			assert.Equal(t, "list", command)
		}
	})
	t.Run("case-sensitive", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.Register("list", "ls"))

		_, ok := r.Resolve("LS")
		assert.False(t, ok)
	})
}

func TestRemove(t *testing.T) {
	t.Parallel()

	t.Run("existing alias", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.RegisterAll("list", []string{"ls", "l"}))

		assert.True(t, r.Remove("ls"))
		_, ok := r.Resolve("ls")
		assert.False(t, ok)
		assert.Equal(t, []string{"l"}, r.Aliases("list"))
	})
	t.Run("last alias drops the command entry", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.Register("list", "ls"))

		assert.True(t, r.Remove("ls"))
		assert.Empty(t, r.Map())
	})
	t.Run("unknown alias", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		assert.False(t, r.Remove("nope"))
	})
	t.Run("case-insensitive removal with original casing", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(&Options{IgnoreCase: true})
		require.NoError(t, r.RegisterAll("list", []string{"LS", "l"}))

		assert.True(t, r.Remove("ls"))
		assert.Equal(t, []string{"l"}, r.Aliases("list"))
		assert.Equal(t, 1, r.Len())
	})
	t.Run("index entry without display list", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.Register("list", "ls"))
		r.aliasToCommand["orphan"] = "delete"

		assert.True(t, r.Remove("orphan"))
		assert.Equal(t, []string{"ls"}, r.Aliases("list"))
	})
	t.Run("alias can be registered again after removal", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.Register("list", "ls"))
		require.True(t, r.Remove("ls"))

		require.NoError(t, r.Register("delete", "ls"))
		command, _ := r.Resolve("ls")
		assert.Equal(t, "delete", command)
	})
	t.Run("remove command", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(nil)
		require.NoError(t, r.RegisterAll("list", []string{"ls", "l"}))
		require.NoError(t, r.Register("delete", "rm"))

		assert.Equal(t, 2, r.RemoveCommand("list"))
		assert.Equal(t, 0, r.RemoveCommand("list"))
		assert.Equal(t, []string{"rm"}, r.All())
	})
}

func TestCopiesAreIndependent(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	require.NoError(t, r.RegisterAll("list", []string{"ls", "l"}))

	aliases := r.Aliases("list")
	aliases[0] = "changed"
	m := r.Map()
	m["list"][1] = "changed"

	assert.Equal(t, []string{"ls", "l"}, r.Aliases("list"))
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := NewRegistry(&Options{IgnoreCase: true})
	require.NoError(t, r.Register("list", "ls"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				command, ok := r.Resolve("LS")
				assert.True(t, ok)
				assert.Equal(t, "list", command)
			}
		}()
		go func(i int) {
			defer wg.Done()
			_ = r.Register("delete", "rm"+string(rune('a'+i)))
		}(i)
	}
	wg.Wait()
	assert.Len(t, r.Aliases("delete"), 8)
}
