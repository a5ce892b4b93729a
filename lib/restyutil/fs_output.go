package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// Output receives one formatted http exchange at a time.
type Output interface {
	Write(id string, contents string)
}

// FilesystemOutput writes every exchange into its own file under a directory.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput empties dir (creating it if needed).
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.RemoveAll(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}

var unsafePathChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// Dump writes every response the client receives to output, ids are
// "<sequence>-<path>.http".
func Dump(client *resty.Client, output Output) {
	if output == nil {
		return
	}
	var counter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		n := atomic.AddUint64(&counter, 1)
		path := "response"
		if res.RawResponse != nil && res.RawResponse.Request != nil {
			path = unsafePathChars.ReplaceAllString(res.RawResponse.Request.URL.Path, "_")
		}
		output.Write(fmt.Sprintf("%03d-%s.http", n, path), formatHttpMessage(res))
		return nil
	})
}
