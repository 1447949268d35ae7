package pandasai

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// EnvAPIKey names the environment variable holding the platform API key.
const EnvAPIKey = "PANDABI_API_KEY"

// Environ reads environment settings. Split out so tests can inject
// credentials without touching the process environment.
type Environ interface {
	Get(key string) string
}

// OSEnviron is the production Environ backed by os.Getenv.
type OSEnviron struct{}

func (OSEnviron) Get(key string) string { return os.Getenv(key) }

// FileSystem resolves and opens dataset artifacts for upload.
type FileSystem interface {
	Exists(path string) bool
	Open(path string) (io.ReadCloser, error)
}

// AferoFS adapts an afero filesystem to the FileSystem capability.
type AferoFS struct {
	Fs afero.Fs
}

// NewOsFS returns a FileSystem over the real disk.
func NewOsFS() *AferoFS {
	return &AferoFS{Fs: afero.NewOsFs()}
}

func (a *AferoFS) Exists(path string) bool {
	ok, err := afero.Exists(a.Fs, path)
	return err == nil && ok
}

func (a *AferoFS) Open(path string) (io.ReadCloser, error) {
	return a.Fs.Open(path)
}

// Publisher uploads a saved dataset's artifacts to the remote server. Zero
// value fields fall back to the production collaborators.
type Publisher struct {
	Env     Environ
	FS      FileSystem
	Session Session

	// ProjectRoot overrides project-root discovery when non-empty.
	ProjectRoot string
}

// artifact names and content types, uploaded in this order.
var pushArtifacts = []struct {
	name        string
	contentType string
}{
	{"schema.yaml", "application/x-yaml"},
	{"data.parquet", "application/octet-stream"},
}

// Push uploads the frame's staged artifacts using default collaborators:
// process environment, real filesystem, and the platform API session.
func (d *DataFrame) Push(ctx context.Context) error {
	return (&Publisher{}).Push(ctx, d)
}

// Push validates preconditions, gathers the staged artifact files that
// exist, and issues one authenticated multipart POST. Every file handle it
// opens is closed before returning, whether the request succeeds or fails.
func (p *Publisher) Push(ctx context.Context, d *DataFrame) error {
	if d.Path == "" {
		return &UsageError{Msg: "Please save the dataset before pushing to the remote server."}
	}

	env := p.Env
	if env == nil {
		env = OSEnviron{}
	}
	apiKey := env.Get(EnvAPIKey)
	if apiKey == "" {
		return &APIKeyError{Var: EnvAPIKey}
	}

	root := p.ProjectRoot
	if root == "" {
		root = FindProjectRoot(env)
	}
	dir := filepath.Join(root, filepath.FromSlash(d.Path))

	fs := p.FS
	if fs == nil {
		fs = NewOsFS()
	}

	var opened []io.ReadCloser
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	var files []FormFile
	for _, artifact := range pushArtifacts {
		path := filepath.Join(dir, artifact.name)
		if !fs.Exists(path) {
			continue
		}
		f, err := fs.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		opened = append(opened, f)
		files = append(files, FormFile{
			Field:       "files",
			Name:        artifact.name,
			ContentType: artifact.contentType,
			Body:        f,
		})
	}

	session := p.Session
	if session == nil {
		session = NewAPISession(env)
	}

	params := url.Values{}
	params.Set("path", d.Path)
	params.Set("description", d.Description)
	params.Set("name", d.Name)
	headers := map[string]string{
		"accept":          "application/json",
		"x-authorization": "Bearer " + apiKey,
	}

	resp, err := session.Post(ctx, "/datasets/push", files, params, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("push %s: HTTP %d: %s", d.Path, resp.StatusCode, slurp)
	}
	return nil
}
