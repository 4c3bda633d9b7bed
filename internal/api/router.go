package api

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/LJTian/eztax/internal/content"
	"github.com/LJTian/eztax/internal/news"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// 单次页面渲染等待上游的上限；抓取本身另有超时
const renderTimeout = 10 * time.Second

// NewsSource 提供新闻数据，便于在测试中替换
type NewsSource interface {
	Latest(ctx context.Context) news.Feed
	SourceURL() string
}

type Server struct {
	news NewsSource
	site *content.Site
}

func NewServer(src NewsSource, site *content.Site) *Server {
	return &Server{news: src, site: site}
}

// Templates 解析嵌入的页面模板
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"inc": func(i int) int { return i + 1 },
	}).ParseFS(templatesFS, "templates/*.tmpl")
}

func (s *Server) RegisterRoutes(r *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", s.health)
	r.GET("/", s.home)
	r.GET("/news", s.newsPage)
	r.GET("/news/static", s.staticNewsPage)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/news", s.listNews)
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.tmpl", gin.H{
		"Site": s.site,
	})
}

func (s *Server) newsPage(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), renderTimeout)
	defer cancel()

	feed := s.news.Latest(ctx)
	c.HTML(http.StatusOK, "news.tmpl", gin.H{
		"Site": s.site,
		"Feed": feed,
	})
}

func (s *Server) staticNewsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "news_static.tmpl", gin.H{
		"Site":      s.site,
		"SourceURL": s.news.SourceURL(),
	})
}

func (s *Server) listNews(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), renderTimeout)
	defer cancel()

	feed := s.news.Latest(ctx)
	// 抓取失败同样返回 200，由 unavailable 字段区分，前端据此展示兜底文案
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    feed,
	})
}
