package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
	"github.com/syn-studios/presscanvas-blog/internal/editor"
)

var (
	newDraft    editor.Draft
	newFile     string
	newRegister bool
	newStdout   bool
	newForce    bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a markdown post from flags",
	Long: `Generate a frontmatter-prefixed markdown post.

The body is read from --content, or from --file ("-" for stdin). The file is
written to <content-dir>/posts/<slug>.md; --register also adds the post to
posts.json so it becomes the featured post.`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
	f := newCmd.Flags()
	f.StringVar(&newDraft.Title, "title", "", "post title (required)")
	f.StringVar(&newDraft.Slug, "slug", "", "URL slug (default derived from the title)")
	f.StringVar(&newDraft.Excerpt, "excerpt", "", "short summary (default the title)")
	f.StringVar(&newDraft.Tags, "tags", "", "comma separated tags")
	f.StringVar(&newDraft.Author, "author", "", "author name (default "+editor.DefaultAuthor+")")
	f.StringVar(&newDraft.Content, "content", "", "markdown body")
	f.StringVarP(&newFile, "file", "f", "", "read the markdown body from a file, - for stdin")
	f.BoolVar(&newRegister, "register", false, "add the post to posts.json")
	f.BoolVar(&newStdout, "stdout", false, "print the markdown instead of writing it")
	f.BoolVar(&newForce, "force", false, "overwrite an existing post file")
}

func runNew(cmd *cobra.Command, args []string) error {
	draft := newDraft
	if newFile != "" {
		body, err := readBody(cmd, newFile)
		if err != nil {
			return err
		}
		draft.Content = body
	}

	now := time.Now()
	doc, err := draft.Generate(now)
	var verr *editor.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		return fmt.Errorf("please fill in at least the title and content: %w", err)
	}
	if errors.Is(err, editor.ErrInvalidSlug) {
		return fmt.Errorf("slug %q is not URL safe: %w", draft.ResolvedSlug(), err)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if newStdout {
		fmt.Fprint(out, doc.Markdown)
		return nil
	}

	path := filepath.Join(postsDir(cfg), doc.Filename)
	if _, err := os.Stat(path); err == nil && !newForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := blog.AtomicWriteFile(path, []byte(doc.Markdown), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %s\n", color.GreenString("created"), path)

	if newRegister {
		post, err := draft.Post(uuid.NewString(), now)
		if err != nil {
			return err
		}
		if err := blog.PrependToIndex(indexPath(cfg), post); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s in %s\n", color.GreenString("registered"), post.Slug, indexPath(cfg))
	}
	return nil
}

func readBody(cmd *cobra.Command, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
