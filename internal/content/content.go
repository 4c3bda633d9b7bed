// Package content 保存落地页的静态文案。文案以 YAML 形式嵌入二进制，启动时解析一次。
package content

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var siteYAML []byte

type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type Brand struct {
	Name        string `yaml:"name"`
	Domain      string `yaml:"domain"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	BookingURL  string `yaml:"booking_url"`
	PortalURL   string `yaml:"portal_url"`
}

type Card struct {
	Title  string   `yaml:"title"`
	Text   string   `yaml:"text"`
	Points []string `yaml:"points"`
}

type Hero struct {
	Pill        string `yaml:"pill"`
	Heading     string `yaml:"heading"`
	Lead        string `yaml:"lead"`
	Rating      string `yaml:"rating"`
	Credentials string `yaml:"credentials"`
	Highlights  []Card `yaml:"highlights"`
}

type Tier struct {
	Name      string   `yaml:"name"`
	Price     string   `yaml:"price"`
	Points    []string `yaml:"points"`
	CTA       string   `yaml:"cta"`
	Highlight bool     `yaml:"highlight"`
}

type Plan struct {
	Name     string   `yaml:"name"`
	Price    string   `yaml:"price"`
	Duration string   `yaml:"duration"`
	Topics   []string `yaml:"topics"`
}

// Highlight 是不依赖抓取的静态新闻条目
type Highlight struct {
	Date    string `yaml:"date"`
	Tag     string `yaml:"tag"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	URL     string `yaml:"url"`
}

type Testimonial struct {
	Text   string `yaml:"text"`
	Author string `yaml:"author"`
}

type FAQ struct {
	Q string `yaml:"q"`
	A string `yaml:"a"`
}

type Contact struct {
	Heading  string `yaml:"heading"`
	Lead     string `yaml:"lead"`
	Email    string `yaml:"email"`
	Location string `yaml:"location"`
}

type Site struct {
	Brand        Brand         `yaml:"brand"`
	Nav          []Link        `yaml:"nav"`
	Hero         Hero          `yaml:"hero"`
	Trust        []string      `yaml:"trust"`
	Services     []Card        `yaml:"services"`
	Process      []Card        `yaml:"process"`
	Pricing      []Tier        `yaml:"pricing"`
	Academy      []Plan        `yaml:"academy"`
	Highlights   []Highlight   `yaml:"highlights"`
	Testimonials []Testimonial `yaml:"testimonials"`
	FAQ          []FAQ         `yaml:"faq"`
	Contact      Contact       `yaml:"contact"`
}

// Load 解析嵌入的站点文案
func Load() (*Site, error) {
	return Parse(siteYAML)
}

func Parse(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("content: parse site yaml: %w", err)
	}
	if s.Brand.Name == "" {
		return nil, errors.New("content: brand.name is required")
	}
	return &s, nil
}
