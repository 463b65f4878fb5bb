package service

import (
	"time"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/pkg/config"
	"pm-dashboard/internal/repository"
	"pm-dashboard/internal/ws"
	pkgErrors "pm-dashboard/pkg/responses"
)

// parseDate 解析YYYY-MM-DD日期字符串
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, *s)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeValidationError, "日期格式错误, 应为YYYY-MM-DD", err)
	}
	return &t, nil
}

// formatDate 格式化日期指针
func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dto.DateLayout)
	return &s
}

// formatTime 格式化时间戳
func formatTime(t time.Time) string {
	return t.Format(dto.TimeLayout)
}

// toLookupResponse 字典模型转响应
func toLookupResponse(base *model.LookupBase) *dto.LookupResponse {
	if base == nil {
		return nil
	}
	return &dto.LookupResponse{
		ID:        base.ID,
		Name:      base.Name,
		Color:     base.Color,
		SortOrder: base.SortOrder,
	}
}

// statusToLookup Status转响应
func statusToLookup(s *model.Status) *dto.LookupResponse {
	if s == nil {
		return nil
	}
	resp := toLookupResponse(&s.LookupBase)
	resp.Category = s.Category
	return resp
}

// priorityToLookup Priority转响应
func priorityToLookup(p *model.Priority) *dto.LookupResponse {
	if p == nil {
		return nil
	}
	resp := toLookupResponse(&p.LookupBase)
	resp.Rank = p.Rank
	return resp
}

// publish 空值安全的广播, 广播失败不影响写操作结果
func publish(publisher ws.Publisher, room, msgType string, payload interface{}) {
	if publisher == nil {
		return
	}
	publisher.Publish(room, msgType, payload)
}

// demoScope demo_mode下的项目子实体列表过滤
func demoScope(cfg *config.ServerConfig) []repository.QueryOption {
	if cfg == nil || !cfg.DemoMode {
		return nil
	}
	return []repository.QueryOption{repository.WithDemoScope(cfg.DemoProjectIDs)}
}

// projectDemoScope demo_mode下的项目列表过滤
func projectDemoScope(cfg *config.ServerConfig) []repository.QueryOption {
	if cfg == nil || !cfg.DemoMode {
		return nil
	}
	return []repository.QueryOption{repository.WithProjectDemoScope(cfg.DemoProjectIDs)}
}

// checkLookup 校验字典外键存在性, id为nil时跳过
func checkLookup(repo repository.LookupRepository, kind repository.LookupKind, id *int64) error {
	if id == nil {
		return nil
	}
	ok, err := repo.Exists(kind, *id)
	if err != nil {
		return err
	}
	if !ok {
		return pkgErrors.ErrLookupNotFound
	}
	return nil
}
