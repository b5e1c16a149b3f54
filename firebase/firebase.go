package firebase

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"wedding-planner/utilities"
)

var (
	app     *firebase.App
	initErr error
	once    sync.Once
)

// InitializeFirebase cria o app do Firebase uma única vez.
// credentialsPath vazio usa as credenciais padrão do ambiente (ADC).
func InitializeFirebase(ctx context.Context, credentialsPath string) (*firebase.App, error) {
	once.Do(func() {
		var opts []option.ClientOption
		if credentialsPath != "" {
			opts = append(opts, option.WithCredentialsFile(credentialsPath))
		}
		app, initErr = firebase.NewApp(ctx, nil, opts...)
		if initErr != nil {
			initErr = fmt.Errorf("erro ao inicializar Firebase: %w", initErr)
			return
		}
		utilities.LogInfo("Firebase inicializado com sucesso!")
	})
	return app, initErr
}

// GetAuthClient retorna o cliente de autenticação
func GetAuthClient(ctx context.Context) (*auth.Client, error) {
	if app == nil {
		return nil, fmt.Errorf("firebase não inicializado")
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter cliente de Auth: %w", err)
	}
	return authClient, nil
}

func GetFirestoreClient(ctx context.Context) (*firestore.Client, error) {
	if app == nil {
		return nil, fmt.Errorf("firebase não inicializado")
	}
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter cliente do Firestore: %w", err)
	}
	return firestoreClient, nil
}
