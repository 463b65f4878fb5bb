package seed

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"pm-dashboard/internal/model"
)

// lookupItem 种子文件中的单个字典项
type lookupItem struct {
	Name      string `yaml:"name"`
	Color     string `yaml:"color"`
	SortOrder int    `yaml:"sort_order"`
	Category  string `yaml:"category"` // 仅status
	Rank      int    `yaml:"rank"`     // 仅priority
}

// seedFile 种子文件结构
type seedFile struct {
	Statuses         []lookupItem `yaml:"statuses"`
	Priorities       []lookupItem `yaml:"priorities"`
	Functions        []lookupItem `yaml:"functions"`
	Platforms        []lookupItem `yaml:"platforms"`
	Portfolios       []lookupItem `yaml:"portfolios"`
	ApplicationTypes []lookupItem `yaml:"application_types"`
	InvestmentTypes  []lookupItem `yaml:"investment_types"`
	ProjectTypes     []lookupItem `yaml:"project_types"`
}

// Run 从yaml文件导入字典种子数据
// 按name幂等: 已存在的字典项跳过, 可重复执行
func Run(db *gorm.DB, file string, logger *zap.Logger) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("读取种子文件失败: %w", err)
	}

	var data seedFile
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("解析种子文件失败: %w", err)
	}

	created := 0
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, item := range data.Statuses {
			n, err := upsert(tx, &model.Status{LookupBase: base(item), Category: item.Category}, item.Name)
			if err != nil {
				return err
			}
			created += n
		}
		for _, item := range data.Priorities {
			n, err := upsert(tx, &model.Priority{LookupBase: base(item), Rank: item.Rank}, item.Name)
			if err != nil {
				return err
			}
			created += n
		}
		for _, item := range data.Functions {
			n, err := upsert(tx, &model.Function{LookupBase: base(item)}, item.Name)
			if err != nil {
				return err
			}
			created += n
		}
		for _, item := range data.Platforms {
			n, err := upsert(tx, &model.Platform{LookupBase: base(item)}, item.Name)
			if err != nil {
				return err
			}
			created += n
		}
		for _, item := range data.Portfolios {
			n, err := upsert(tx, &model.Portfolio{LookupBase: base(item)}, item.Name)
			if err != nil {
				return err
			}
			created += n
		}
		for _, item := range data.ApplicationTypes {
			n, err := upsert(tx, &model.ApplicationType{LookupBase: base(item)}, item.Name)
			if err != nil {
				return err
			}
			created += n
		}
		for _, item := range data.InvestmentTypes {
			n, err := upsert(tx, &model.InvestmentType{LookupBase: base(item)}, item.Name)
			if err != nil {
				return err
			}
			created += n
		}
		for _, item := range data.ProjectTypes {
			n, err := upsert(tx, &model.ProjectType{LookupBase: base(item)}, item.Name)
			if err != nil {
				return err
			}
			created += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("字典种子数据导入完成", zap.String("file", file), zap.Int("created", created))
	return nil
}

func base(item lookupItem) model.LookupBase {
	return model.LookupBase{
		Name:      item.Name,
		Color:     item.Color,
		SortOrder: item.SortOrder,
	}
}

// upsert 按name幂等创建, 返回新建条数
func upsert(tx *gorm.DB, entity interface{}, name string) (int, error) {
	var count int64
	if err := tx.Model(entity).Where("name = ?", name).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("查询字典项 %s 失败: %w", name, err)
	}
	if count > 0 {
		return 0, nil
	}
	if err := tx.Create(entity).Error; err != nil {
		return 0, fmt.Errorf("创建字典项 %s 失败: %w", name, err)
	}
	return 1, nil
}
