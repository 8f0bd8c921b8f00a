package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/eleganceshop/storefront/internal/domain"
	"github.com/eleganceshop/storefront/internal/repo"
)

// 账户业务错误
var (
	ErrMissingAddressFields = errors.New("missing required address fields")
	ErrAddressNotFound      = errors.New("address not found")
	ErrInvalidAvatar        = errors.New("invalid avatar data")
)

// AccountService 定义账户业务逻辑接口
type AccountService interface {
	Profile(ctx context.Context) *domain.Profile
	SaveProfile(ctx context.Context, p *domain.Profile) *domain.Profile
	Avatar(ctx context.Context) (string, bool)
	SaveAvatar(ctx context.Context, dataURL string) error

	Addresses(ctx context.Context) []domain.SavedAddress
	CreateAddress(ctx context.Context, req *domain.SaveAddressRequest) (*domain.SavedAddress, error)
	UpdateAddress(ctx context.Context, id string, req *domain.SaveAddressRequest) (*domain.SavedAddress, error)
	DeleteAddress(ctx context.Context, id string) []domain.SavedAddress
	SetDefaultAddress(ctx context.Context, id string) ([]domain.SavedAddress, error)
}

// accountService 实现AccountService接口
type accountService struct {
	accountRepo repo.AccountRepository
}

// NewAccountService 创建账户服务实例
func NewAccountService(accountRepo repo.AccountRepository) AccountService {
	return &accountService{accountRepo: accountRepo}
}

// Profile 读取账户资料
func (s *accountService) Profile(ctx context.Context) *domain.Profile {
	return s.accountRepo.Profile(ctx)
}

// SaveProfile 保存账户资料（字段去首尾空白后整体覆盖）
func (s *accountService) SaveProfile(ctx context.Context, p *domain.Profile) *domain.Profile {
	clean := &domain.Profile{
		Name:  strings.TrimSpace(p.Name),
		Phone: strings.TrimSpace(p.Phone),
		Email: strings.TrimSpace(p.Email),
	}
	s.accountRepo.SaveProfile(ctx, clean)
	return clean
}

// Avatar 读取头像
func (s *accountService) Avatar(ctx context.Context) (string, bool) {
	return s.accountRepo.Avatar(ctx)
}

// SaveAvatar 保存头像；只接受 data-URL 形式的图片数据。
func (s *accountService) SaveAvatar(ctx context.Context, dataURL string) error {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return ErrInvalidAvatar
	}
	s.accountRepo.SaveAvatar(ctx, dataURL)
	return nil
}

// Addresses 读取收货地址列表
func (s *accountService) Addresses(ctx context.Context) []domain.SavedAddress {
	return s.accountRepo.Addresses(ctx)
}

// CreateAddress 新增收货地址。
// 首个地址自动成为默认地址；设为默认时清掉其他地址的默认标记。
func (s *accountService) CreateAddress(ctx context.Context, req *domain.SaveAddressRequest) (*domain.SavedAddress, error) {
	if err := validateAddress(req); err != nil {
		return nil, err
	}

	addrs := s.accountRepo.Addresses(ctx)
	addr := addressFrom(req)
	addr.ID = uuid.NewString()
	if len(addrs) == 0 {
		addr.IsDefault = true
	}
	if addr.IsDefault {
		clearDefault(addrs)
	}
	addrs = append(addrs, *addr)
	s.accountRepo.SaveAddresses(ctx, addrs)
	return addr, nil
}

// UpdateAddress 编辑收货地址；地址不存在时返回错误。
func (s *accountService) UpdateAddress(ctx context.Context, id string, req *domain.SaveAddressRequest) (*domain.SavedAddress, error) {
	if err := validateAddress(req); err != nil {
		return nil, err
	}

	addrs := s.accountRepo.Addresses(ctx)
	i := indexOfAddress(addrs, id)
	if i < 0 {
		return nil, ErrAddressNotFound
	}

	addr := addressFrom(req)
	addr.ID = id
	if addr.IsDefault {
		clearDefault(addrs)
	} else if addrs[i].IsDefault {
		// 唯一的默认地址不能通过编辑退出默认状态
		addr.IsDefault = true
	}
	addrs[i] = *addr
	s.accountRepo.SaveAddresses(ctx, addrs)
	return addr, nil
}

// DeleteAddress 删除收货地址，不存在时为良性空操作。
// 删除的是默认地址时，余下的第一个地址继任默认。
func (s *accountService) DeleteAddress(ctx context.Context, id string) []domain.SavedAddress {
	addrs := s.accountRepo.Addresses(ctx)
	i := indexOfAddress(addrs, id)
	if i < 0 {
		return addrs
	}

	wasDefault := addrs[i].IsDefault
	addrs = append(addrs[:i], addrs[i+1:]...)
	if wasDefault && len(addrs) > 0 {
		addrs[0].IsDefault = true
	}
	s.accountRepo.SaveAddresses(ctx, addrs)
	return addrs
}

// SetDefaultAddress 将指定地址设为默认，其余全部取消默认标记。
func (s *accountService) SetDefaultAddress(ctx context.Context, id string) ([]domain.SavedAddress, error) {
	addrs := s.accountRepo.Addresses(ctx)
	i := indexOfAddress(addrs, id)
	if i < 0 {
		return nil, ErrAddressNotFound
	}

	clearDefault(addrs)
	addrs[i].IsDefault = true
	s.accountRepo.SaveAddresses(ctx, addrs)
	return addrs, nil
}

func validateAddress(req *domain.SaveAddressRequest) error {
	if strings.TrimSpace(req.Label) == "" ||
		strings.TrimSpace(req.City) == "" ||
		strings.TrimSpace(req.Street) == "" {
		return ErrMissingAddressFields
	}
	return nil
}

func addressFrom(req *domain.SaveAddressRequest) *domain.SavedAddress {
	return &domain.SavedAddress{
		Label:     strings.TrimSpace(req.Label),
		City:      strings.TrimSpace(req.City),
		District:  strings.TrimSpace(req.District),
		Street:    strings.TrimSpace(req.Street),
		Details:   strings.TrimSpace(req.Details),
		Phone:     strings.TrimSpace(req.Phone),
		IsDefault: req.IsDefault,
	}
}

func indexOfAddress(addrs []domain.SavedAddress, id string) int {
	for i := range addrs {
		if addrs[i].ID == id {
			return i
		}
	}
	return -1
}

func clearDefault(addrs []domain.SavedAddress) {
	for i := range addrs {
		addrs[i].IsDefault = false
	}
}
