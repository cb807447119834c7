package parser

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/harrison/rob/internal/models"
)

// MarkdownParser parses framework definitions written as Markdown:
//
//	# Blinding review
//
//	## Domain 1: Randomization
//	**Kind**: randomization
//
//	### Question 1.1: Was the allocation sequence random?
//	- Yes
//	- No
//	- No Information
//
//	### Question 1.2: Notes on the allocation procedure
//	**Required**: no
//	**Answers**: free text
//
// A question without an answer list takes the standard signaling answers.
// Optional YAML frontmatter may carry the framework name.
type MarkdownParser struct {
	markdown goldmark.Markdown
}

var (
	domainHeadingRegex   = regexp.MustCompile(`^Domain\s+(\d+):\s*(.+)$`)
	questionHeadingRegex = regexp.MustCompile(`^Question\s+([\w.]+):\s*(.+)$`)
	fieldRegex           = regexp.MustCompile(`^([A-Za-z][A-Za-z ]*):\s*(.*)$`)
)

func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{
		markdown: goldmark.New(),
	}
}

// Parse implements Parser
func (p *MarkdownParser) Parse(r io.Reader) (*models.Framework, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	fw := &models.Framework{}
	content, frontmatter := extractFrontmatter(content)
	if frontmatter != nil {
		var meta struct {
			Name string `yaml:"name"`
		}
		if err := yaml.Unmarshal(frontmatter, &meta); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
		fw.Name = meta.Name
	}

	doc := p.markdown.Parser().Parse(text.NewReader(content))
	b := &markdownBuilder{fw: fw, source: content}

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() == ast.KindDocument {
			return ast.WalkContinue, nil
		}
		var err error
		switch node := n.(type) {
		case *ast.Heading:
			err = b.heading(node)
		case *ast.Paragraph:
			err = b.paragraph(node)
		case *ast.List:
			err = b.list(node)
		}
		return ast.WalkSkipChildren, err
	})
	if err != nil {
		return nil, err
	}

	return finish(fw)
}

// markdownBuilder accumulates the framework while walking top-level blocks.
type markdownBuilder struct {
	fw     *models.Framework
	source []byte

	domain       *models.Domain
	aggregateSet bool

	question      *models.Question
	customAnswers bool
	freeText      bool
}

func (b *markdownBuilder) heading(h *ast.Heading) error {
	title := extractText(h, b.source)

	switch h.Level {
	case 1:
		if b.fw.Name == "" {
			b.fw.Name = title
		}
	case 2:
		m := domainHeadingRegex.FindStringSubmatch(title)
		if m == nil {
			return fmt.Errorf("heading %q: expected \"Domain N: name\"", title)
		}
		index, _ := strconv.Atoi(m[1])
		b.domain = models.NewDomain(index, strings.TrimSpace(m[2]), models.KindCustom)
		b.aggregateSet = false
		b.question = nil
		b.fw.Domains = append(b.fw.Domains, b.domain)
	case 3:
		m := questionHeadingRegex.FindStringSubmatch(title)
		if m == nil {
			return fmt.Errorf("heading %q: expected \"Question ID: text\"", title)
		}
		if b.domain == nil {
			return fmt.Errorf("question %s appears before any domain", m[1])
		}
		b.question = &models.Question{
			ID:             m[1],
			Text:           strings.TrimSpace(m[2]),
			AllowedAnswers: models.SignalingAnswers(),
			IsRequired:     true,
		}
		b.customAnswers = false
		b.freeText = false
		b.domain.Questions = append(b.domain.Questions, b.question)
	}
	return nil
}

func (b *markdownBuilder) paragraph(p *ast.Paragraph) error {
	for _, line := range strings.Split(extractText(p, b.source), "\n") {
		m := fieldRegex.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(m[1]))
		value := strings.TrimSpace(m[2])

		var err error
		switch {
		case b.question != nil:
			err = b.questionField(key, value)
		case b.domain != nil:
			err = b.domainField(key, value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *markdownBuilder) domainField(key, value string) error {
	switch key {
	case "kind":
		kind, err := models.ParseDomainKind(value)
		if err != nil {
			return fmt.Errorf("domain %d: %w", b.domain.Index, err)
		}
		b.domain.Kind = kind
		if !b.aggregateSet {
			b.domain.Aggregate = kind.DefaultAggregate()
		}
	case "aggregate":
		v, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("domain %d: invalid aggregate value %q", b.domain.Index, value)
		}
		b.domain.Aggregate = v
		b.aggregateSet = true
	}
	return nil
}

func (b *markdownBuilder) questionField(key, value string) error {
	q := b.question
	switch key {
	case "required":
		v, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("question %s: invalid required value %q", q.ID, value)
		}
		q.IsRequired = v
	case "index":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("question %s: invalid index %q", q.ID, value)
		}
		q.Index = v
	case "answers":
		if strings.EqualFold(value, "free text") {
			q.AllowedAnswers = nil
			b.freeText = true
			b.customAnswers = true
			return nil
		}
		var answers []string
		for _, a := range strings.Split(value, ",") {
			if a = strings.TrimSpace(a); a != "" {
				answers = append(answers, a)
			}
		}
		q.AllowedAnswers = answers
		b.customAnswers = true
	}
	return nil
}

func (b *markdownBuilder) list(l *ast.List) error {
	if b.question == nil {
		return nil
	}
	if b.freeText {
		return fmt.Errorf("question %s: free-text question cannot list answers", b.question.ID)
	}
	if !b.customAnswers {
		b.question.AllowedAnswers = nil
		b.customAnswers = true
	}
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		if answer := extractText(item, b.source); answer != "" {
			b.question.AllowedAnswers = append(b.question.AllowedAnswers, answer)
		}
	}
	return nil
}

// extractText collects the plain text below n. Soft and hard line breaks
// become newlines so field paragraphs can be split per line.
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

// extractFrontmatter splits a leading "---" delimited YAML block from the
// document. It returns the body and the frontmatter, or the content and nil
// when there is no complete block.
func extractFrontmatter(content []byte) ([]byte, []byte) {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) < 3 || string(bytes.TrimSpace(lines[0])) != "---" {
		return content, nil
	}

	for i := 1; i < len(lines); i++ {
		if string(bytes.TrimSpace(lines[i])) == "---" {
			return bytes.Join(lines[i+1:], []byte("\n")), bytes.Join(lines[1:i], []byte("\n"))
		}
	}
	return content, nil
}
