package keyline_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/keyline"
	"github.com/arthur-debert/toolstrap/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const envFile = "/home/tester/.Renviron"

func linesOf(t *testing.T, content string) []string {
	t.Helper()
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

func TestKeyPrefix(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		wantErr bool
	}{
		{"simple", `CC="clang"`, "CC=", false},
		{"value contains equals", `PKG_CONFIG_PATH="a=b:c"`, "PKG_CONFIG_PATH=", false},
		{"leading whitespace", `   FC="gfortran"`, "FC=", false},
		{"empty value", `F77=`, "F77=", false},
		{"no equals", `export PATH`, "", true},
		{"equals first", `="x"`, "", true},
		{"empty", ``, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := keyline.KeyPrefix(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnsureKey(t *testing.T) {
	tests := []struct {
		name        string
		initial     *string
		line        string
		wantChanged bool
		wantContent string
	}{
		{
			name:        "missing file is created",
			initial:     nil,
			line:        `CC="clang"`,
			wantChanged: true,
			wantContent: "CC=\"clang\"\n",
		},
		{
			name:        "empty file",
			initial:     strPtr(""),
			line:        `CC="clang"`,
			wantChanged: true,
			wantContent: "CC=\"clang\"\n",
		},
		{
			name:        "only unrelated keys",
			initial:     strPtr("R_LIBS_USER=\"~/R\"\nLANG=\"en_US.UTF-8\"\n"),
			line:        `CC="clang"`,
			wantChanged: true,
			wantContent: "R_LIBS_USER=\"~/R\"\nLANG=\"en_US.UTF-8\"\nCC=\"clang\"\n",
		},
		{
			name:        "exact key present",
			initial:     strPtr("CC=\"gcc-12\"\n"),
			line:        `CC="clang"`,
			wantChanged: false,
			wantContent: "CC=\"gcc-12\"\n",
		},
		{
			name:        "key present with surrounding whitespace",
			initial:     strPtr("  \tCC=\"gcc-12\"   \n"),
			line:        `CC="clang"`,
			wantChanged: false,
			wantContent: "  \tCC=\"gcc-12\"   \n",
		},
		{
			name:        "key is a prefix of a different key",
			initial:     strPtr("PATH_EXTRA=\"x\"\n"),
			line:        `PATH="/opt/homebrew/bin:${PATH}"`,
			wantChanged: true,
			wantContent: "PATH_EXTRA=\"x\"\nPATH=\"/opt/homebrew/bin:${PATH}\"\n",
		},
		{
			name:        "key appears mid line only",
			initial:     strPtr("# CC=\"old\"\nMY_CC=\"x\"\n"),
			line:        `CC="clang"`,
			wantChanged: true,
			wantContent: "# CC=\"old\"\nMY_CC=\"x\"\nCC=\"clang\"\n",
		},
		{
			name:        "missing trailing newline is repaired before append",
			initial:     strPtr("LANG=\"C\""),
			line:        `CC="clang"`,
			wantChanged: true,
			wantContent: "LANG=\"C\"\nCC=\"clang\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := testutil.NewMemoryFS()
			if tt.initial != nil {
				testutil.WriteFile(t, fs, envFile, *tt.initial)
			}

			changed, err := keyline.New(fs).EnsureKey(envFile, tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantContent, testutil.ReadFile(t, fs, envFile))
		})
	}
}

func TestEnsureKey_CreatesParentDirectories(t *testing.T) {
	fs := testutil.NewMemoryFS()
	path := "/home/tester/deep/nested/.Renviron"

	changed, err := keyline.New(fs).EnsureKey(path, `CC="clang"`)
	require.NoError(t, err)
	assert.True(t, changed)

	info, err := fs.Stat("/home/tester/deep/nested")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureKey_Idempotent(t *testing.T) {
	fs := testutil.NewMemoryFS()
	testutil.WriteFile(t, fs, envFile, "LANG=\"C\"\n")
	appender := keyline.New(fs)

	first, err := appender.EnsureKey(envFile, `FC="/opt/homebrew/bin/gfortran"`)
	require.NoError(t, err)
	once := testutil.ReadFile(t, fs, envFile)

	second, err := appender.EnsureKey(envFile, `FC="/opt/homebrew/bin/gfortran"`)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, once, testutil.ReadFile(t, fs, envFile))
}

func TestEnsureKey_FirstWriteWins(t *testing.T) {
	fs := testutil.NewMemoryFS()
	appender := keyline.New(fs)

	_, err := appender.EnsureKey(envFile, `PKG_CONFIG="/opt/homebrew/bin/pkg-config"`)
	require.NoError(t, err)

	changed, err := appender.EnsureKey(envFile, `PKG_CONFIG="/usr/local/bin/pkg-config"`)
	require.NoError(t, err)
	assert.False(t, changed, "a different value for a present key is never written")

	lines := linesOf(t, testutil.ReadFile(t, fs, envFile))
	assert.Equal(t, []string{`PKG_CONFIG="/opt/homebrew/bin/pkg-config"`}, lines)
}

func TestEnsureKey_PreservesOrderAndAppendsOnlyAtEnd(t *testing.T) {
	fs := testutil.NewMemoryFS()
	original := "Z=\"1\"\n# comment\n\nA=\"2\"\nM=\"3\"\n"
	testutil.WriteFile(t, fs, envFile, original)
	appender := keyline.New(fs)

	for _, line := range []string{`CC="clang"`, `A="other"`, `CXX="clang++"`} {
		_, err := appender.EnsureKey(envFile, line)
		require.NoError(t, err)
	}

	got := testutil.ReadFile(t, fs, envFile)
	require.True(t, strings.HasPrefix(got, original), "existing content must be untouched")
	assert.Equal(t, "CC=\"clang\"\nCXX=\"clang++\"\n", strings.TrimPrefix(got, original))
}

func TestEnsureKey_AllManagedKeysInSequence(t *testing.T) {
	fs := testutil.NewMemoryFS()
	appender := keyline.New(fs)

	managed := []string{
		`PATH="/opt/homebrew/bin:/opt/homebrew/sbin:${PATH}"`,
		`CC="clang"`,
		`CXX="clang++"`,
		`FC="/opt/homebrew/bin/gfortran"`,
		`F77="/opt/homebrew/bin/gfortran"`,
		`PKG_CONFIG="/opt/homebrew/bin/pkg-config"`,
		`PKG_CONFIG_PATH="/opt/homebrew/lib/pkgconfig:${PKG_CONFIG_PATH}"`,
	}

	for round := 0; round < 3; round++ {
		for _, line := range managed {
			changed, err := appender.EnsureKey(envFile, line)
			require.NoError(t, err)
			assert.Equal(t, round == 0, changed, "round %d line %s", round, line)
		}
	}

	assert.Equal(t, managed, linesOf(t, testutil.ReadFile(t, fs, envFile)))
}

func TestEnsureKey_RejectsInvalidLines(t *testing.T) {
	fs := testutil.NewMemoryFS()
	appender := keyline.New(fs)

	_, err := appender.EnsureKey(envFile, "no key here")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = appender.EnsureKey(envFile, "CC=\"clang\"\nCXX=\"clang++\"")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, statErr := fs.Stat(envFile)
	assert.True(t, errors.IsNotExist(statErr), "invalid input must not create the file")
}

func TestEnsureContaining(t *testing.T) {
	const startup = "/home/tester/.zprofile"
	const needle = "/home/tester/.homebrew/bin/brew shellenv"
	const line = `eval "$(/home/tester/.homebrew/bin/brew shellenv)"`

	t.Run("appends when absent", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		testutil.WriteFile(t, fs, startup, "export EDITOR=vim\n")

		changed, err := keyline.New(fs).EnsureContaining(startup, needle, line)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "export EDITOR=vim\n"+line+"\n", testutil.ReadFile(t, fs, startup))
	})

	t.Run("substring anywhere in a line matches", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		existing := "[ -x ~/.homebrew/bin/brew ] && eval \"$(/home/tester/.homebrew/bin/brew shellenv)\"\n"
		testutil.WriteFile(t, fs, startup, existing)

		changed, err := keyline.New(fs).EnsureContaining(startup, needle, line)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, existing, testutil.ReadFile(t, fs, startup))
	})

	t.Run("empty needle rejected", func(t *testing.T) {
		_, err := keyline.New(testutil.NewMemoryFS()).EnsureContaining(startup, "", line)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestEnsureKey_SeesKeysAfterVeryLongLines(t *testing.T) {
	fs := testutil.NewMemoryFS()
	long := `R_LIBS="` + strings.Repeat("x", 2<<20) + `"`
	testutil.WriteFile(t, fs, envFile, long+"\nCC=\"gcc-12\"\n")

	changed, err := keyline.New(fs).EnsureKey(envFile, `CC="clang"`)
	require.NoError(t, err)
	assert.False(t, changed)

	content := testutil.ReadFile(t, fs, envFile)
	assert.Equal(t, 1, strings.Count(content, "CC="))
	assert.True(t, strings.HasSuffix(content, "CC=\"gcc-12\"\n"))
}

func TestEnsureKey_CRLFLines(t *testing.T) {
	fs := testutil.NewMemoryFS()
	testutil.WriteFile(t, fs, envFile, "LANG=\"C\"\r\nCC=\"gcc\"\r\n")
	appender := keyline.New(fs)

	changed, err := appender.EnsureKey(envFile, `CC="clang"`)
	require.NoError(t, err)
	assert.False(t, changed, "a key on a CRLF line is still found")

	changed, err = appender.EnsureKey(envFile, `CXX="clang++"`)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "LANG=\"C\"\r\nCC=\"gcc\"\r\nCXX=\"clang++\"\n", testutil.ReadFile(t, fs, envFile))
}

func TestEnsureContaining_CRLFLines(t *testing.T) {
	fs := testutil.NewMemoryFS()
	const profile = "/home/tester/.zprofile"
	testutil.WriteFile(t, fs, profile, "eval \"$(/home/tester/.homebrew/bin/brew shellenv)\"\r\n")

	changed, err := keyline.New(fs).EnsureContaining(profile, "/home/tester/.homebrew/bin/brew shellenv", "unused")
	require.NoError(t, err)
	assert.False(t, changed)
}

func strPtr(s string) *string { return &s }
