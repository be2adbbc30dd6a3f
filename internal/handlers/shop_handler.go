package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/report"
	slotdomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/slug"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type ShopHandler struct {
	db      *gorm.DB
	images  storage.ImageStore
	reports report.Repository
	audit   audit.Recorder
}

// images pode ser nil quando o S3 não está configurado.
func NewShopHandler(
	db *gorm.DB,
	images storage.ImageStore,
	reports report.Repository,
	audit audit.Recorder,
) *ShopHandler {
	return &ShopHandler{db: db, images: images, reports: reports, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type ShopRequest struct {
	Name              *string `json:"name" binding:"omitempty,min=2,max=100"`
	Slug              *string `json:"slug" binding:"omitempty,max=100"`
	Description       *string `json:"description" binding:"omitempty,max=500"`
	Street            *string `json:"street" binding:"omitempty,max=255"`
	City              *string `json:"city" binding:"omitempty,max=100"`
	State             *string `json:"state" binding:"omitempty,max=50"`
	ZipCode           *string `json:"zip_code" binding:"omitempty,max=20"`
	Phone             *string `json:"phone" binding:"omitempty,max=20"`
	Email             *string `json:"email" binding:"omitempty,email"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes" binding:"omitempty,min=0,max=10080"`
}

type ShopStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ShopHoursDay struct {
	Weekday   int    `json:"weekday" binding:"weekday"`
	OpenTime  string `json:"open_time" binding:"hhmm"`
	CloseTime string `json:"close_time" binding:"hhmm"`
	Closed    bool   `json:"closed"`
}

type ShopHoursRequest struct {
	Hours []ShopHoursDay `json:"hours" binding:"required,max=7,dive"`
}

type AddBarberRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Name            string `json:"name" binding:"omitempty,max=100"`
	Phone           string `json:"phone" binding:"omitempty,max=20"`
	Password        string `json:"password" binding:"omitempty,min=6"`
	Bio             string `json:"bio" binding:"omitempty,max=500"`
	ExperienceYears int    `json:"experience_years" binding:"omitempty,min=0,max=80"`
	SpecialtyIDs    []uint `json:"specialty_ids"`
}

type ShopDetail struct {
	models.Shop
	Services []models.Service `json:"services"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *ShopHandler) findShop(c *gin.Context) (*models.Shop, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		return nil, false
	}

	shop, err := shopByID(h.db, id)
	if err != nil {
		httperr.Abort(c, err)
		return nil, false
	}
	return shop, true
}

// managedShop carrega a barbearia e exige dono ou admin.
func (h *ShopHandler) managedShop(c *gin.Context) (*models.Shop, bool) {
	shop, ok := h.findShop(c)
	if !ok {
		return nil, false
	}
	if !middleware.ActorFrom(c).CanManageShop(shop) {
		httperr.Abort(c, httperr.ErrBusiness("forbidden"))
		return nil, false
	}
	return shop, true
}

func publicShop(shop *models.Shop) bool {
	return shop.Active && shop.Status == models.ShopStatusApproved
}

func (h *ShopHandler) record(c *gin.Context, shopID uint, action string, meta any) {
	userID := c.GetUint(middleware.ContextUserID)
	h.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   action,
		Entity:   "shop",
		EntityID: &shopID,
		Metadata: meta,
	})
}

// applyShopRequest copia os campos enviados. Nome sem slug gera slug novo só na criação.
func applyShopRequest(shop *models.Shop, req ShopRequest) error {
	if req.Name != nil {
		shop.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		s := slug.Make(*req.Slug)
		if s == "" {
			return httperr.ErrBusiness("invalid_request")
		}
		shop.Slug = s
	}
	if req.Description != nil {
		shop.Description = strings.TrimSpace(*req.Description)
	}
	if req.Street != nil {
		shop.Street = strings.TrimSpace(*req.Street)
	}
	if req.City != nil {
		shop.City = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		shop.State = strings.TrimSpace(*req.State)
	}
	if req.ZipCode != nil {
		shop.ZipCode = strings.TrimSpace(*req.ZipCode)
	}
	if req.Phone != nil {
		shop.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		shop.Email = normalizeEmail(*req.Email)
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			return httperr.ErrBusiness("invalid_request")
		}
		shop.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}
	return nil
}

func (h *ShopHandler) slugTaken(slug string, exceptID uint) (bool, error) {
	var count int64
	err := h.db.Model(&models.Shop{}).Where("slug = ? AND id <> ?", slug, exceptID).Count(&count).Error
	return count > 0, err
}

// ======================================================
// PUBLIC
// ======================================================

func (h *ShopHandler) List(c *gin.Context) {
	page, limit := pagination(c)

	q := h.db.Model(&models.Shop{}).
		Where("active = ? AND status = ?", true, models.ShopStatusApproved)

	if city := strings.TrimSpace(c.Query("city")); city != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(city))
	}
	if term := strings.TrimSpace(c.Query("query")); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	var shops []models.Shop
	if err := q.
		Order("rating DESC, name ASC").
		Limit(limit).
		Offset(offset(page, limit)).
		Find(&shops).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.Page(c, shops, page, limit, total)
}

func (h *ShopHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var shop models.Shop
	err := h.db.
		Preload("Hours", func(db *gorm.DB) *gorm.DB { return db.Order("weekday ASC") }).
		Preload("Barbers", "active = ?", true).
		Preload("Barbers.User").
		Preload("Barbers.Specialties").
		First(&shop, id).Error
	if err != nil || !publicShop(&shop) {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Abort(c, err)
			return
		}
		httperr.Abort(c, httperr.ErrBusiness("shop_not_found"))
		return
	}

	var services []models.Service
	if err := h.db.
		Where("shop_id = ? AND active = ?", shop.ID, true).
		Order("category ASC, name ASC").
		Find(&services).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.OK(c, ShopDetail{Shop: shop, Services: services})
}

func (h *ShopHandler) ListServices(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("shop_id = ? AND active = ?", id, true).
		Order("category ASC, name ASC").
		Find(&services).Error; err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ShopHandler) ListBarbers(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var barbers []models.BarberProfile
	if err := h.db.
		Preload("User").
		Preload("Specialties").
		Where("shop_id = ? AND active = ?", id, true).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.List(c, barbers)
}

func (h *ShopHandler) ListReviews(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	page, limit := pagination(c)

	q := h.db.Model(&models.Review{}).Where("shop_id = ?", id)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	var reviews []models.Review
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset(page, limit)).
		Find(&reviews).Error; err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Page(c, reviews, page, limit, total)
}

// ======================================================
// OWNER / ADMIN
// ======================================================

func (h *ShopHandler) Mine(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var shops []models.Shop
	if err := h.db.
		Where("owner_id = ?", actor.UserID).
		Order("id ASC").
		Find(&shops).Error; err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.List(c, shops)
}

func (h *ShopHandler) Create(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req ShopRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		httperr.Abort(c, httperr.ErrBusiness("invalid_request"))
		return
	}

	shop := models.Shop{
		OwnerID:           actor.UserID,
		Timezone:          timezone.DefaultTimezone,
		MinAdvanceMinutes: 60,
		Active:            true,
		Status:            models.ShopStatusPending,
	}
	if actor.IsAdmin() {
		shop.Status = models.ShopStatusApproved
	}
	if err := applyShopRequest(&shop, req); err != nil {
		httperr.Abort(c, err)
		return
	}
	if shop.Slug == "" {
		shop.Slug = slug.Make(shop.Name)
	}
	if shop.Slug == "" {
		httperr.Abort(c, httperr.ErrBusiness("invalid_request"))
		return
	}

	taken, err := h.slugTaken(shop.Slug, 0)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if taken {
		httperr.Abort(c, httperr.ErrBusiness("slug_already_exists"))
		return
	}

	if err := h.db.Omit("Owner", "Hours", "Barbers").Create(&shop).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	h.record(c, shop.ID, "shop_created", gin.H{"slug": shop.Slug})
	httpresp.Created(c, shop)
}

func (h *ShopHandler) Update(c *gin.Context) {
	shop, ok := h.managedShop(c)
	if !ok {
		return
	}

	var req ShopRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := applyShopRequest(shop, req); err != nil {
		httperr.Abort(c, err)
		return
	}

	if req.Slug != nil {
		taken, err := h.slugTaken(shop.Slug, shop.ID)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		if taken {
			httperr.Abort(c, httperr.ErrBusiness("slug_already_exists"))
			return
		}
	}

	if err := h.db.Omit("Owner", "Hours", "Barbers").Save(shop).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	h.record(c, shop.ID, "shop_updated", nil)
	httpresp.OK(c, shop)
}

func (h *ShopHandler) Delete(c *gin.Context) {
	shop, ok := h.managedShop(c)
	if !ok {
		return
	}

	if err := h.db.Model(shop).Update("active", false).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	h.record(c, shop.ID, "shop_deactivated", nil)
	c.Status(http.StatusNoContent)
}

func (h *ShopHandler) SetStatus(c *gin.Context) {
	shop, ok := h.findShop(c)
	if !ok {
		return
	}

	var req ShopStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if !models.ValidShopStatus(req.Status) {
		httperr.Abort(c, httperr.ErrBusiness("invalid_status"))
		return
	}

	previous := shop.Status
	if err := h.db.Model(shop).Update("status", req.Status).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	h.record(c, shop.ID, "shop_status_changed", gin.H{"from": previous, "to": req.Status})
	httpresp.OK(c, shop)
}

// buildShopHours valida a semana de funcionamento: um registro por dia e
// abertura antes do fechamento nos dias abertos.
func buildShopHours(days []ShopHoursDay) ([]models.ShopHours, error) {
	seen := map[int]bool{}
	hours := make([]models.ShopHours, 0, len(days))
	for _, d := range days {
		if seen[d.Weekday] {
			return nil, httperr.ErrBusiness("invalid_request")
		}
		seen[d.Weekday] = true

		if !d.Closed {
			open, errOpen := slotdomain.ParseClock(d.OpenTime)
			closeAt, errClose := slotdomain.ParseClock(d.CloseTime)
			if errOpen != nil || errClose != nil {
				return nil, httperr.ErrBusiness("invalid_time")
			}
			if open >= closeAt {
				return nil, httperr.ErrBusiness("invalid_time_range")
			}
		}

		hours = append(hours, models.ShopHours{
			Weekday:   d.Weekday,
			OpenTime:  d.OpenTime,
			CloseTime: d.CloseTime,
			Closed:    d.Closed,
		})
	}
	return hours, nil
}

func (h *ShopHandler) ReplaceHours(c *gin.Context) {
	var req ShopHoursRequest
	if !bindJSON(c, &req) {
		return
	}
	hours, err := buildShopHours(req.Hours)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	shop, ok := h.managedShop(c)
	if !ok {
		return
	}
	for i := range hours {
		hours[i].ShopID = shop.ID
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shop_id = ?", shop.ID).Delete(&models.ShopHours{}).Error; err != nil {
			return err
		}
		if len(hours) == 0 {
			return nil
		}
		return tx.Create(&hours).Error
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	h.record(c, shop.ID, "shop_hours_updated", nil)
	httpresp.List(c, hours)
}

// ======================================================
// STAFF
// ======================================================

func (h *ShopHandler) AddBarber(c *gin.Context) {
	shop, ok := h.managedShop(c)
	if !ok {
		return
	}

	var req AddBarberRequest
	if !bindJSON(c, &req) {
		return
	}

	var profile models.BarberProfile
	err := h.db.Transaction(func(tx *gorm.DB) error {
		user, err := h.barberUser(tx, req)
		if err != nil {
			return err
		}
		if user.ShopID != nil && *user.ShopID != shop.ID {
			return httperr.ErrBusiness("barber_has_other_shop")
		}

		if err := tx.Model(user).Update("shop_id", shop.ID).Error; err != nil {
			return err
		}

		// perfil é único por usuário: reaproveita o de um vínculo anterior
		err = tx.Where("user_id = ?", user.ID).First(&profile).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile = models.BarberProfile{UserID: user.ID}
		case err != nil:
			return err
		}

		profile.ShopID = shop.ID
		profile.Bio = strings.TrimSpace(req.Bio)
		profile.ExperienceYears = req.ExperienceYears
		profile.Active = true
		if err := tx.Omit("User", "Specialties").Save(&profile).Error; err != nil {
			return err
		}

		specialties := tx.Model(&profile).Association("Specialties")
		if len(req.SpecialtyIDs) == 0 {
			if err := specialties.Clear(); err != nil {
				return err
			}
		} else {
			var found []models.Specialty
			if err := tx.Where("id IN ?", req.SpecialtyIDs).Find(&found).Error; err != nil {
				return err
			}
			if len(found) != len(uniqueUints(req.SpecialtyIDs)) {
				return httperr.ErrBusiness("specialty_not_found")
			}
			if err := specialties.Replace(found); err != nil {
				return err
			}
		}

		return tx.Preload("User").Preload("Specialties").First(&profile, profile.ID).Error
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	h.record(c, shop.ID, "barber_attached", gin.H{"barber_id": profile.UserID})
	httpresp.Created(c, profile)
}

// barberUser busca o barbeiro pelo e-mail ou cria um novo.
func (h *ShopHandler) barberUser(tx *gorm.DB, req AddBarberRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	var user models.User
	err := tx.Where("email = ?", email).First(&user).Error
	if err == nil {
		if err := checkBarberCandidate(&user); err != nil {
			return nil, err
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" || req.Password == "" {
		return nil, httperr.ErrBusiness("user_not_found")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user = models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        optionalString(req.Phone),
		PasswordHash: string(hashed),
		Role:         models.RoleBarber,
		Active:       true,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// checkBarberCandidate recusa contas existentes que não podem entrar na equipe.
func checkBarberCandidate(user *models.User) error {
	if user.Role != models.RoleBarber {
		return httperr.ErrBusiness("user_not_barber")
	}
	if !user.Active {
		return httperr.ErrBusiness("user_not_found")
	}
	return nil
}

func (h *ShopHandler) RemoveBarber(c *gin.Context) {
	shop, ok := h.managedShop(c)
	if !ok {
		return
	}
	barberID, ok := uintParam(c, "barberId")
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.BarberProfile{}).
			Where("user_id = ? AND shop_id = ? AND active = ?", barberID, shop.ID, true).
			Update("active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("barber_not_found")
		}

		// agenda futura livre sai do ar junto com o barbeiro
		today := timezone.NowIn(shop.Timezone).Format(slotdomain.DateLayout)
		if err := tx.Model(&models.Slot{}).
			Where("barber_id = ? AND shop_id = ? AND status = ? AND is_booked = ? AND date >= ?",
				barberID, shop.ID, models.SlotStatusAvailable, false, today).
			Update("status", models.SlotStatusBlocked).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", barberID).
			Update("shop_id", nil).Error
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	h.record(c, shop.ID, "barber_detached", gin.H{"barber_id": barberID})
	c.Status(http.StatusNoContent)
}

// ======================================================
// IMAGE
// ======================================================

func (h *ShopHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		httperr.Abort(c, httperr.ErrBusiness("storage_disabled"))
		return
	}

	shop, ok := h.managedShop(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil || file.Size == 0 || file.Size > storage.MaxImageBytes {
		httperr.Abort(c, httperr.ErrBusiness("invalid_image"))
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Abort(c, httperr.ErrBusiness("invalid_image"))
		return
	}
	defer src.Close()

	data, err := storage.ToWebP(src, storage.CoverMaxWidth)
	if err != nil {
		httperr.Abort(c, httperr.ErrBusiness("invalid_image"))
		return
	}

	url, err := h.images.Put(c.Request.Context(), fmt.Sprintf("shops/%d", shop.ID), data)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	if err := h.db.Model(shop).Update("cover_image_url", url).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	h.record(c, shop.ID, "shop_image_uploaded", gin.H{"url": url})
	httpresp.OK(c, gin.H{"cover_image_url": url})
}

// ======================================================
// STATS
// ======================================================

func (h *ShopHandler) Stats(c *gin.Context) {
	shop, ok := h.managedShop(c)
	if !ok {
		return
	}

	rg, err := statsRange(c.Query("from"), c.Query("to"), timezone.NowIn(shop.Timezone))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	rg.ShopID = shop.ID

	ctx := c.Request.Context()
	rows, err := h.reports.CountByStatus(ctx, rg)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	top, err := h.reports.TopServices(ctx, rg, 5)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.OK(c, report.Build(rg, rows, top, time.Now().UTC()))
}

// statsRange: padrão é do dia 1 do mês corrente até hoje.
func statsRange(from, to string, now time.Time) (report.Range, error) {
	if from == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(slotdomain.DateLayout)
	}
	if to == "" {
		to = now.Format(slotdomain.DateLayout)
	}

	f, err := time.Parse(slotdomain.DateLayout, from)
	if err != nil {
		return report.Range{}, httperr.ErrBusiness("invalid_date")
	}
	t, err := time.Parse(slotdomain.DateLayout, to)
	if err != nil {
		return report.Range{}, httperr.ErrBusiness("invalid_date")
	}
	if t.Before(f) {
		return report.Range{}, httperr.ErrBusiness("invalid_date_range")
	}
	if t.Sub(f) > 366*24*time.Hour {
		return report.Range{}, httperr.ErrBusiness("range_too_large")
	}

	return report.Range{From: from, To: to}, nil
}

func uniqueUints(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
