package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"gostorefront/config"
	"gostorefront/internal/pkg/httpclient"
	"gostorefront/internal/pkg/logger"
	"gostorefront/internal/pkg/session"
	"gostorefront/internal/pkg/storage"

	// Serviços para Injeção de Dependências
	"gostorefront/internal/service/authservice"
	"gostorefront/internal/service/cartservice"
	"gostorefront/internal/service/catalogservice"
	"gostorefront/internal/service/wishlistservice"
)

func main() {
	// 1. Configuração e Inicialização
	if err := godotenv.Load(); err != nil {
		// Sem .env não é erro: as variáveis podem vir do ambiente do sistema.
		log.Println("Aviso: arquivo .env não encontrado, usando apenas o ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", map[string]interface{}{
		"backend": cfg.BackendBaseURL(),
		"storage": cfg.StorageBackend,
	})

	// 2. Storage local do cliente (file por padrão, redis para deploys
	// server-side com múltiplos processos)
	var store storage.Store
	var err error
	switch cfg.StorageBackend {
	case "redis":
		store, err = storage.NewRedisStore(cfg.RedisAddr, cfg.RedisPrefix)
	default:
		store, err = storage.NewFileStore(cfg.StoragePath)
	}
	if err != nil {
		appLog.Error("Falha ao inicializar o storage local.", err)
		os.Exit(1)
	}

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Storage -> Session -> Cliente HTTP -> Serviços
	sess := session.NewSession(store, appLog)
	api := httpclient.New(cfg.BackendBaseURL(), cfg.HTTPTimeout, sess, appLog)

	authSvc := authservice.NewService(api, sess, appLog)
	catalogSvc := catalogservice.NewService(api, appLog)
	cartSvc := cartservice.NewService(api, sess, store, appLog)
	wishlistSvc := wishlistservice.NewService(api, appLog)

	ctx := context.Background()

	// 4. Checagem de sessão (401 aqui é um estado normal, não um erro)
	user, err := authSvc.Profile(ctx)
	switch {
	case err != nil:
		appLog.Error("Falha ao checar a sessão.", err)
	case user != nil:
		appLog.Info("Sessão ativa.", map[string]interface{}{"user": user.Email})
	default:
		appLog.Info("Sem sessão ativa, operando como convidado.", nil)
	}

	// 5. Primeira página do catálogo
	page, err := catalogSvc.ListProducts(ctx, catalogservice.ListParams{Page: 1, Limit: 10})
	if err != nil {
		appLog.Error("Falha ao listar o catálogo.", err)
		os.Exit(1)
	}

	fmt.Printf("Catálogo: %d produtos (página %d de %d)\n",
		page.Meta.Total, page.Meta.Page, page.Meta.TotalPages)
	for _, p := range page.Products {
		fmt.Printf("  - %s [%s] R$ %.2f", p.Name, p.Platform.Name, p.FinalPrice)
		if savings := p.Savings(); savings > 0 {
			fmt.Printf(" (economize R$ %.2f)", savings)
		}
		fmt.Println()
	}

	// 6. Carrinho local
	if err := cartSvc.Load(ctx); err != nil {
		appLog.Error("Falha ao carregar o carrinho.", err)
		os.Exit(1)
	}
	fmt.Printf("Carrinho: %d itens, total R$ %.2f\n", cartSvc.Count(), cartSvc.Total())

	// 7. Wishlist (só existe a variante do servidor)
	if user != nil {
		if err := wishlistSvc.Load(ctx); err != nil {
			appLog.Error("Falha ao carregar a wishlist.", err)
		} else {
			fmt.Printf("Wishlist: %d produtos\n", len(wishlistSvc.Products()))
		}
	}
}
