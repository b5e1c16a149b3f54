package main

import (
	"context"
	"log"
	"net/http"

	"wedding-planner/config"
	"wedding-planner/database"
	"wedding-planner/firebase"
	"wedding-planner/flows"
	"wedding-planner/gmail"
	"wedding-planner/handlers"
	"wedding-planner/quota"
	"wedding-planner/utilities"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}
	utilities.InitLogger(cfg.LogLevel)
	ctx := context.Background()

	if _, err := firebase.InitializeFirebase(ctx, cfg.FirebaseCredentials); err != nil {
		log.Fatalf("Erro ao inicializar Firebase: %v", err)
	}
	authClient, err := firebase.GetAuthClient(ctx)
	if err != nil {
		log.Fatalf("Erro ao obter cliente de Auth: %v", err)
	}
	firestoreClient, err := firebase.GetFirestoreClient(ctx)
	if err != nil {
		log.Fatalf("Erro ao obter cliente do Firestore: %v", err)
	}
	defer firestoreClient.Close()

	db, err := database.Connect(cfg.QuotaDBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Erro ao conectar ao banco de dados: %v", err)
	}
	defer db.Close()

	store := firebase.NewStore(firestoreClient)
	handlers.InitAuth(firebase.NewTokenVerifier(authClient))
	handlers.InitStores(store, store)
	handlers.InitGmail(
		quota.NewStore(db, cfg.GmailDailyQuota),
		&gmail.Transports{Tokens: store, OAuth: gmail.OAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret)},
		store,
	)

	if cfg.CategoryColorsFile != "" {
		palette, err := config.LoadPalette(cfg.CategoryColorsFile)
		if err != nil {
			log.Fatalf("Erro ao carregar cores das categorias: %v", err)
		}
		handlers.InitPalette(palette)
	}

	if cfg.GeminiAPIKey != "" {
		drafter, err := flows.NewVendorEmailDrafter(ctx, cfg.GeminiAPIKey, cfg.GenkitModel)
		if err != nil {
			log.Fatalf("Erro ao inicializar gerador de rascunhos: %v", err)
		}
		handlers.InitDrafter(drafter)
	} else {
		utilities.LogInfo("GEMINI_API_KEY não definida, POST /gmail/draft vai responder 503")
	}

	utilities.LogInfo("Servidor iniciado na porta %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, NewRouter(cfg.CORSAllowedOrigins)))
}
