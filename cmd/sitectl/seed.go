package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// seedFile 描述 seed 命令读取的 YAML 内容
type seedFile struct {
	Settings *struct {
		SiteName         string `yaml:"site_name"`
		WhatsAppFallback string `yaml:"whatsapp_fallback"`
	} `yaml:"settings"`
	Contacts []struct {
		Key      string `yaml:"key"`
		Value    string `yaml:"value"`
		Label    string `yaml:"label"`
		Category string `yaml:"category"`
	} `yaml:"contacts"`
	Services []struct {
		Title       string           `yaml:"title"`
		Description string           `yaml:"description"`
		Icon        string           `yaml:"icon"`
		Features    []string         `yaml:"features"`
		Link        string           `yaml:"link"`
		Pricing     []db.PricingTier `yaml:"pricing"`
	} `yaml:"services"`
	Products []struct {
		Title       string   `yaml:"title"`
		Description string   `yaml:"description"`
		Icon        string   `yaml:"icon"`
		ImageURL    string   `yaml:"image_url"`
		Features    []string `yaml:"features"`
	} `yaml:"products"`
	Categories []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Icon        string `yaml:"icon"`
	} `yaml:"categories"`
	Projects []struct {
		Title       string   `yaml:"title"`
		Description string   `yaml:"description"`
		Features    []string `yaml:"features"`
		ImageURL    string   `yaml:"image_url"`
		Link        string   `yaml:"link"`
		Category    string   `yaml:"category"`
	} `yaml:"projects"`
}

type seedResult struct {
	Contacts, Services, Products, Categories, Projects int
}

func newSeedCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Import site content from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			content, err := parseSeed(file)
			if err != nil {
				return err
			}
			gdb, err := open()
			if err != nil {
				return err
			}
			result, err := applySeed(cmd.Context(), gdb, content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d contacts, %d services, %d products, %d categories, %d projects\n",
				result.Contacts, result.Services, result.Products, result.Categories, result.Projects)
			return nil
		},
	}
}

func parseSeed(r io.Reader) (seedFile, error) {
	var content seedFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&content); err != nil && err != io.EOF {
		return seedFile{}, fmt.Errorf("parse seed file: %w", err)
	}
	return content, nil
}

// applySeed 在一个事务中写入全部内容，任何一条失败则整体回滚
func applySeed(ctx context.Context, gdb *gorm.DB, content seedFile) (seedResult, error) {
	var result seedResult
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if content.Settings != nil {
			settings := service.NewSettingService(tx, "")
			if _, err := settings.Update(ctx, service.SiteSettings{
				SiteName:         content.Settings.SiteName,
				WhatsAppFallback: content.Settings.WhatsAppFallback,
			}); err != nil {
				return fmt.Errorf("settings: %w", err)
			}
		}

		contacts := service.NewContactInfoService(tx)
		for _, item := range content.Contacts {
			if _, err := contacts.Create(ctx, service.ContactInfoInput{
				Key: item.Key, Value: item.Value, Label: item.Label, Category: item.Category,
			}); err != nil {
				return fmt.Errorf("contact %q: %w", item.Key, err)
			}
			result.Contacts++
		}

		offerings := service.NewOfferingService(tx)
		for _, item := range content.Services {
			pricing := ""
			if len(item.Pricing) > 0 {
				raw, err := json.Marshal(item.Pricing)
				if err != nil {
					return err
				}
				pricing = string(raw)
			}
			if _, err := offerings.Create(ctx, service.OfferingInput{
				Title:       item.Title,
				Description: item.Description,
				Icon:        item.Icon,
				Features:    service.JoinLines(item.Features),
				Pricing:     pricing,
				LinkURL:     item.Link,
			}); err != nil {
				return fmt.Errorf("service %q: %w", item.Title, err)
			}
			result.Services++
		}

		products := service.NewProductService(tx)
		for _, item := range content.Products {
			if _, err := products.Create(ctx, service.ProductInput{
				Title:       item.Title,
				Description: item.Description,
				Icon:        item.Icon,
				ImageURL:    item.ImageURL,
				Features:    service.JoinLines(item.Features),
			}); err != nil {
				return fmt.Errorf("product %q: %w", item.Title, err)
			}
			result.Products++
		}

		projects := service.NewProjectService(tx)
		categoryIDs := map[string]string{}
		for _, item := range content.Categories {
			category, err := projects.CreateCategory(ctx, item.Name, item.Description, item.Icon)
			if err != nil {
				return fmt.Errorf("category %q: %w", item.Name, err)
			}
			categoryIDs[category.Name] = category.ID
			result.Categories++
		}
		for _, item := range content.Projects {
			categoryID := ""
			if item.Category != "" {
				id, ok := categoryIDs[item.Category]
				if !ok {
					return fmt.Errorf("project %q: unknown category %q", item.Title, item.Category)
				}
				categoryID = id
			}
			if _, err := projects.Create(ctx, service.ProjectInput{
				Title:       item.Title,
				Description: item.Description,
				Features:    service.JoinLines(item.Features),
				ImageURL:    item.ImageURL,
				Link:        item.Link,
				CategoryID:  categoryID,
			}); err != nil {
				return fmt.Errorf("project %q: %w", item.Title, err)
			}
			result.Projects++
		}
		return nil
	})
	if err != nil {
		return seedResult{}, err
	}
	return result, nil
}
