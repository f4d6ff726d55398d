package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/zaqqye/agency_backend/internal/markdown"
	"github.com/zaqqye/agency_backend/internal/models"
)

const errSlugTaken = "blog post with this slug already exists"

type BlogController struct {
	DB       *gorm.DB
	Markdown *markdown.Renderer
	Logger   *zap.Logger
}

type createPostRequest struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	CoverImage string   `json:"coverImage"`
	Author     string   `json:"author"`
	Tags       []string `json:"tags"`
	Published  bool     `json:"published"`
}

func (r createPostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&r.Slug, validation.RuneLength(0, 191)),
		validation.Field(&r.Excerpt, validation.RuneLength(0, 500)),
	)
}

type updatePostRequest struct {
	Title      *string   `json:"title"`
	Slug       *string   `json:"slug"`
	Excerpt    *string   `json:"excerpt"`
	Content    *string   `json:"content"`
	CoverImage *string   `json:"coverImage"`
	Author     *string   `json:"author"`
	Tags       *[]string `json:"tags"`
	Published  *bool     `json:"published"`
}

func cleanTags(tags []string) datatypes.JSONSlice[string] {
	out := make([]string, 0, len(tags))
	seen := map[string]struct{}{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return datatypes.NewJSONSlice(out)
}

// ListPublished is the public blog index: published posts, newest first,
// optionally filtered by ?tag=.
func (bc *BlogController) ListPublished(c *gin.Context) {
	p := parsePage(c, 10)
	tag := strings.ToLower(strings.TrimSpace(c.Query("tag")))

	base := bc.DB.Model(&models.BlogPost{}).Where("published = ?", true)
	if tag != "" {
		base = base.Where(datatypes.JSONArrayQuery("tags").Contains(tag))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		respondError(c, bc.Logger, err)
		return
	}

	var posts []models.BlogPost
	listQ := base.Session(&gorm.Session{}).Order("published_at DESC").Order("created_at DESC")
	if !p.All {
		listQ = listQ.Offset(p.offset()).Limit(p.Limit)
	}
	if err := listQ.Find(&posts).Error; err != nil {
		respondError(c, bc.Logger, err)
		return
	}

	meta := p.meta(total)
	if tag != "" {
		meta["tag"] = tag
	}
	c.JSON(http.StatusOK, gin.H{"data": posts, "meta": meta})
}

// GetBySlug returns a published post with its body rendered as HTML.
func (bc *BlogController) GetBySlug(c *gin.Context) {
	var post models.BlogPost
	err := bc.DB.Where("slug = ? AND published = ?", strings.TrimSpace(c.Param("slug")), true).First(&post).Error
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "blog post not found"})
			return
		}
		respondError(c, bc.Logger, err)
		return
	}
	bc.respondWithHTML(c, post)
}

func (bc *BlogController) respondWithHTML(c *gin.Context, post models.BlogPost) {
	html, err := bc.Markdown.Render(post.Content)
	if err != nil {
		respondError(c, bc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          post.ID,
		"title":       post.Title,
		"slug":        post.Slug,
		"excerpt":     post.Excerpt,
		"content":     post.Content,
		"contentHtml": html,
		"coverImage":  post.CoverImage,
		"author":      post.Author,
		"tags":        post.Tags,
		"published":   post.Published,
		"publishedAt": post.PublishedAt,
		"createdAt":   post.CreatedAt,
		"updatedAt":   post.UpdatedAt,
	})
}

// AdminList returns drafts and published posts; ?status=draft|published
// and ?q= narrow the result.
func (bc *BlogController) AdminList(c *gin.Context) {
	p := parsePage(c, 20)
	base := bc.DB.Model(&models.BlogPost{})
	switch strings.ToLower(c.Query("status")) {
	case "published":
		base = base.Where("published = ?", true)
	case "draft":
		base = base.Where("published = ?", false)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where("LOWER(title) LIKE ? OR slug LIKE ?", like, like)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		respondError(c, bc.Logger, err)
		return
	}
	var posts []models.BlogPost
	listQ := base.Session(&gorm.Session{}).Order("created_at DESC")
	if !p.All {
		listQ = listQ.Offset(p.offset()).Limit(p.Limit)
	}
	if err := listQ.Find(&posts).Error; err != nil {
		respondError(c, bc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": posts, "meta": p.meta(total)})
}

func (bc *BlogController) AdminGet(c *gin.Context) {
	var post models.BlogPost
	if err := bc.DB.Where("id = ?", c.Param("id")).First(&post).Error; err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "blog post not found"})
			return
		}
		respondError(c, bc.Logger, err)
		return
	}
	bc.respondWithHTML(c, post)
}

func (bc *BlogController) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, bc.Logger, err)
		return
	}

	s := req.Slug
	if strings.TrimSpace(s) == "" {
		s = req.Title
	}
	s = slug.Make(s)
	if s == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug cannot be derived from title"})
		return
	}

	post := models.BlogPost{
		Title:      strings.TrimSpace(req.Title),
		Slug:       s,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Author:     req.Author,
		Tags:       cleanTags(req.Tags),
		Published:  req.Published,
	}
	if post.Published {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	if err := bc.DB.Create(&post).Error; err != nil {
		if isDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"error": errSlugTaken})
			return
		}
		respondError(c, bc.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (bc *BlogController) Update(c *gin.Context) {
	var post models.BlogPost
	if err := bc.DB.Where("id = ?", c.Param("id")).First(&post).Error; err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "blog post not found"})
			return
		}
		respondError(c, bc.Logger, err)
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title cannot be empty"})
			return
		}
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		s := slug.Make(*req.Slug)
		if s == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slug"})
			return
		}
		post.Slug = s
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.CoverImage != nil {
		post.CoverImage = *req.CoverImage
	}
	if req.Author != nil {
		post.Author = *req.Author
	}
	if req.Tags != nil {
		post.Tags = cleanTags(*req.Tags)
	}
	if req.Published != nil {
		if *req.Published && !post.Published {
			now := time.Now().UTC()
			post.PublishedAt = &now
		}
		if !*req.Published {
			post.PublishedAt = nil
		}
		post.Published = *req.Published
	}
	if post.Tags == nil {
		post.Tags = datatypes.JSONSlice[string]{}
	}

	if err := bc.DB.Save(&post).Error; err != nil {
		if isDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"error": errSlugTaken})
			return
		}
		respondError(c, bc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (bc *BlogController) Delete(c *gin.Context) {
	res := bc.DB.Where("id = ?", c.Param("id")).Delete(&models.BlogPost{})
	if res.Error != nil {
		respondError(c, bc.Logger, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "blog post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
