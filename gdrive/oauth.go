package gdrive

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// OAuth is for the google drive access (read only).
// If successful, the Google Drive service will be returned.
// Without a valid token file, a new token is requested with user interaction and saved to tokenFile.
func OAuth(clientCredFile, tokenFile string) (*drive.Service, error) {
	// ConfigFromJSON uses a Google Developers Console client_credentials.json file to construct a config.
	// client_credentials.json can be downloaded from https://console.developers.google.com, under "Credentials".
	oAuthConf, err := loadOAuthConf(clientCredFile, drive.DriveReadonlyScope)
	if err != nil {
		log.Printf("ERROR: %s/OAuth: %v", packageName, err)
		return nil, err
	}

	// load oauth 2.0 token from a file
	tok, err := loadToken(tokenFile)
	if err != nil {
		log.Printf("WARNING: %s/OAuth: %v", packageName, err)

		// get token with user interaction
		tok, err = reqNewToken(tokenFile, oAuthConf)
		if err != nil {
			return nil, err
		}
	}

	ctx := context.Background()
	service, err := drive.NewService(ctx, option.WithTokenSource(oAuthConf.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("gdrive/OAuth: %v", err)
	}
	return service, nil
}

// ServiceAccount is the drive access (read only) for workers without user interaction.
// keyFile is the JSON key of a Google service account.
func ServiceAccount(keyFile string) (*drive.Service, error) {
	b, err := ioutil.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("gdrive/ServiceAccount: %v", err)
	}

	conf, err := google.JWTConfigFromJSON(b, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("gdrive/ServiceAccount: %v", err)
	}

	ctx := context.Background()
	service, err := drive.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("gdrive/ServiceAccount: %v", err)
	}
	return service, nil
}

//--------  HELPER  --------------------------------------------------------------------------------------------------//

// loadOAuthConf loads a valid OAuth config from a file
func loadOAuthConf(file, scope string) (*oauth2.Config, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("gdrive/loadOAuthConf: %v", err)
	}

	oAuthConf, err := google.ConfigFromJSON(b, scope)
	if err != nil {
		return nil, fmt.Errorf("gdrive/loadOAuthConf: %v", err)
	}
	return oAuthConf, nil
}

// loadToken loads a valid token from a file
func loadToken(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("gdrive/loadToken: %v", err)
	}
	defer f.Close()

	tok := new(oauth2.Token)
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("gdrive/loadToken: %v", err)
	}
	return tok, nil
}

// reqNewToken allow the user to request a token (user interaction).
// If successful, the valid token is written to a file and returned.
func reqNewToken(file string, oAuthConf *oauth2.Config) (*oauth2.Token, error) {
	var authCode string
	authURL := oAuthConf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("\nFollow the link and create a new token file: %v\n\nEnter the authorization code here: ", authURL)
	_, _ = fmt.Scan(&authCode) // read user input

	tok, err := oAuthConf.Exchange(context.TODO(), authCode)
	if err != nil {
		return nil, fmt.Errorf("gdrive/reqNewToken: %v", err)
	}

	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600) // override file
	if err != nil {
		return nil, fmt.Errorf("gdrive/reqNewToken: %v", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return nil, fmt.Errorf("gdrive/reqNewToken: %v", err)
	}
	return tok, nil
}
