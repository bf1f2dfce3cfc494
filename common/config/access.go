package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var Path = "media-client.yaml"

var instance *MainClientConfig
var singletonLock = &sync.Once{}

func reloadConfig() (*MainClientConfig, error) {
	c := NewDefaultMainConfig()

	// Write a default config if the one given doesn't exist
	_, err := os.Stat(Path)
	exists := err == nil || !os.IsNotExist(err)
	if !exists {
		fmt.Println("Generating new configuration...")
		configBytes, err := yaml.Marshal(c)
		if err != nil {
			return nil, err
		}

		newFile, err := os.Create(Path)
		if err != nil {
			return nil, err
		}

		_, err = newFile.Write(configBytes)
		if err != nil {
			return nil, err
		}

		err = newFile.Close()
		if err != nil {
			return nil, err
		}
	}

	buffer, err := os.ReadFile(Path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(buffer, &c)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func Get() *MainClientConfig {
	if instance == nil {
		singletonLock.Do(func() {
			c, err := reloadConfig()
			if err != nil {
				logrus.Fatal(err)
			}
			instance = c
		})
	}
	return instance
}

// GetHomeserver returns the configured entry for the given server name, or
// nil if the server isn't explicitly configured.
func GetHomeserver(name string) *HomeserverConfig {
	for i, hs := range Get().Homeservers {
		if hs.Name == name {
			return &Get().Homeservers[i]
		}
	}
	return nil
}

func PrintHomeserverInfo() {
	hss := Get().Homeservers
	if len(hss) == 0 {
		logrus.Info("No homeservers configured - relying on .well-known discovery")
		return
	}
	logrus.Info("Configured homeservers:")
	for _, hs := range hss {
		logrus.Info(fmt.Sprintf("\t%s (%s)", hs.Name, hs.ClientServerApi))
	}
}

func AddHomeserverForTesting(name string, csApi string) {
	if instance == nil {
		c := NewDefaultMainConfig()
		instance = &c
	}
	instance.Homeservers = append(instance.Homeservers, HomeserverConfig{
		Name:            name,
		ClientServerApi: csApi,
	})
}
